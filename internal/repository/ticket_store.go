package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/alkmaar-rp/supportbot/internal/domain"
)

// ErrTicketNotFound reports a missing ticket record.
var ErrTicketNotFound = errors.New("ticket record not found")

// TicketStore is the authoritative keyed store for ticket records. The
// channel topic string mirrors these records for humans; lookups go here.
type TicketStore interface {
	Put(ctx context.Context, ticket *domain.Ticket) error
	Get(ctx context.Context, channelID string) (*domain.Ticket, error)
	Delete(ctx context.Context, channelID string) error
}

const ticketKeyPrefix = "ticket:"

type redisTicketStore struct {
	client *redis.Client
}

// NewRedisTicketStore stores ticket records as JSON values in Redis.
func NewRedisTicketStore(client *redis.Client) TicketStore {
	return &redisTicketStore{client: client}
}

func (s *redisTicketStore) Put(ctx context.Context, ticket *domain.Ticket) error {
	payload, err := json.Marshal(ticket)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, ticketKeyPrefix+ticket.ChannelID, payload, 0).Err()
}

func (s *redisTicketStore) Get(ctx context.Context, channelID string) (*domain.Ticket, error) {
	payload, err := s.client.Get(ctx, ticketKeyPrefix+channelID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	var ticket domain.Ticket
	if err := json.Unmarshal(payload, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *redisTicketStore) Delete(ctx context.Context, channelID string) error {
	return s.client.Del(ctx, ticketKeyPrefix+channelID).Err()
}

type fileTicketStore struct {
	mu      sync.Mutex
	path    string
	tickets map[string]domain.Ticket
}

// NewFileTicketStore keeps ticket records in memory and checkpoints the
// full map to a JSON file on every mutation.
func NewFileTicketStore(path string) (TicketStore, error) {
	store := &fileTicketStore{
		path:    path,
		tickets: make(map[string]domain.Ticket),
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read ticket state: %w", err)
		}
		return store, nil
	}
	if err := json.Unmarshal(payload, &store.tickets); err != nil {
		return nil, fmt.Errorf("parse ticket state: %w", err)
	}
	return store, nil
}

func (s *fileTicketStore) Put(ctx context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets[ticket.ChannelID] = *ticket
	return s.checkpoint()
}

func (s *fileTicketStore) Get(ctx context.Context, channelID string) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket, ok := s.tickets[channelID]
	if !ok {
		return nil, ErrTicketNotFound
	}
	return &ticket, nil
}

func (s *fileTicketStore) Delete(ctx context.Context, channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tickets, channelID)
	return s.checkpoint()
}

func (s *fileTicketStore) checkpoint() error {
	payload, err := json.MarshalIndent(s.tickets, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, payload, 0o644)
}
