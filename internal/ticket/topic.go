// Package ticket holds the pure core of the ticket system: the topic
// codec, the permission planner and the priority name markers.
package ticket

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alkmaar-rp/supportbot/internal/domain"
)

// ErrMalformedTopic reports a topic string that does not parse as ticket
// metadata. A channel with such a topic is not a ticket channel.
var ErrMalformedTopic = errors.New("malformed ticket topic")

const (
	topicPrefix   = "Ticket van "
	creatorDelim  = " | Creator: "
	claimDelim    = " | Claimed by: "
	categoryOpen  = " ("
	categoryClose = ") |"
)

// Meta is the metadata mirrored in a ticket channel's topic string.
type Meta struct {
	CreatorTag string
	CreatorID  string
	Category   domain.CategoryKey
	ClaimedBy  string
}

// EncodeTopic renders ticket metadata into the topic grammar:
//
//	Ticket van <tag> (<category>) | Creator: <id>[ | Claimed by: <claimant>]
//
// DecodeTopic is its exact inverse.
func EncodeTopic(meta Meta) string {
	topic := fmt.Sprintf("%s%s (%s)%s%s", topicPrefix, meta.CreatorTag, meta.Category, creatorDelim, meta.CreatorID)
	if meta.ClaimedBy != "" {
		topic += claimDelim + meta.ClaimedBy
	}
	return topic
}

// DecodeTopic parses a topic string back into ticket metadata. It fails
// with ErrMalformedTopic when the sentinel prefix or the category
// delimiters are missing.
func DecodeTopic(topic string) (Meta, error) {
	if !strings.HasPrefix(topic, topicPrefix) {
		return Meta{}, ErrMalformedTopic
	}
	rest := topic[len(topicPrefix):]

	catStart := strings.Index(rest, categoryOpen)
	if catStart < 0 {
		return Meta{}, ErrMalformedTopic
	}
	catEnd := strings.Index(rest[catStart:], categoryClose)
	if catEnd < 0 {
		return Meta{}, ErrMalformedTopic
	}
	catEnd += catStart

	meta := Meta{
		CreatorTag: rest[:catStart],
		Category:   domain.CategoryKey(rest[catStart+len(categoryOpen) : catEnd]),
	}

	creatorStart := strings.Index(rest, creatorDelim)
	if creatorStart < 0 {
		return Meta{}, ErrMalformedTopic
	}
	creator := rest[creatorStart+len(creatorDelim):]
	if claimStart := strings.Index(creator, claimDelim); claimStart >= 0 {
		meta.ClaimedBy = creator[claimStart+len(claimDelim):]
		creator = creator[:claimStart]
	}
	meta.CreatorID = creator
	return meta, nil
}

// WithClaim appends the claim clause to a topic. Paired with StripClaim:
// the two are reversible string transforms, not independent writes.
func WithClaim(topic, claimantID string) string {
	return topic + claimDelim + claimantID
}

// StripClaim removes the claim clause, restoring the unclaimed topic.
func StripClaim(topic string) string {
	if idx := strings.Index(topic, claimDelim); idx >= 0 {
		return topic[:idx]
	}
	return topic
}

// IsTicketTopic reports whether a topic carries the ticket sentinel.
func IsTicketTopic(topic string) bool {
	return strings.HasPrefix(topic, topicPrefix)
}
