package bot

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/alkmaar-rp/supportbot/internal/domain"
	"github.com/alkmaar-rp/supportbot/internal/observability"
	"github.com/alkmaar-rp/supportbot/internal/platform"
	"github.com/alkmaar-rp/supportbot/internal/service"
	apperrors "github.com/alkmaar-rp/supportbot/pkg/util"
)

const apologyText = "Er ging iets mis bij het verwerken van je actie. Probeer het later opnieuw of neem contact op met staff."

// Router dispatches normalized interactions to the services. Every handler
// runs behind a recover guard; a panic or unexpected error becomes a
// generic apology instead of a dead interaction.
type Router struct {
	tickets   *service.TicketService
	reminders *service.ReminderService
	reviews   *service.ReviewService
	templates *service.TemplateService
	staff     *service.StaffService
	registry  *domain.CategoryRegistry
	platform  platform.Client
	metrics   *observability.Metrics
	logger    *zap.Logger
	roles     RouterRoles
}

// RouterRoles holds the role IDs gating staff commands.
type RouterRoles struct {
	Support          string
	StaffCoordinator string
	Bestuur          string
}

// RouterDependencies bundles collaborators for the router.
type RouterDependencies struct {
	Tickets   *service.TicketService
	Reminders *service.ReminderService
	Reviews   *service.ReviewService
	Templates *service.TemplateService
	Staff     *service.StaffService
	Registry  *domain.CategoryRegistry
	Platform  platform.Client
	Metrics   *observability.Metrics
	Logger    *zap.Logger
}

// NewRouter constructs the router.
func NewRouter(roles RouterRoles, deps RouterDependencies) *Router {
	return &Router{
		tickets:   deps.Tickets,
		reminders: deps.Reminders,
		reviews:   deps.Reviews,
		templates: deps.Templates,
		staff:     deps.Staff,
		registry:  deps.Registry,
		platform:  deps.Platform,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
		roles:     roles,
	}
}

// Handle routes one interaction. It never returns an error to the gateway
// layer; failures are reported to the actor and logged here.
func (r *Router) Handle(ctx context.Context, in Interaction, respond Responder) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("interaction handler panicked",
				zap.String("name", in.Name),
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()))
			_ = respond.ReplyEphemeral(platform.Outgoing{Content: apologyText})
		}
	}()

	err := r.dispatch(ctx, in, respond)
	if r.metrics != nil {
		r.metrics.RecordInteraction(string(in.Kind), in.Name, err != nil)
	}
	if err == nil {
		return
	}

	domainErr := apperrors.ToDomainError(err)
	if domainErr.HTTPStatus >= 500 {
		r.logger.Error("interaction failed",
			zap.String("name", in.Name),
			zap.String("actor_id", in.ActorID),
			zap.Error(err))
		_ = respond.ReplyEphemeral(platform.Outgoing{Content: apologyText})
		return
	}
	_ = respond.ReplyEphemeral(platform.Outgoing{Content: "⚠️ " + domainErr.Message})
}

func (r *Router) dispatch(ctx context.Context, in Interaction, respond Responder) error {
	switch in.Kind {
	case KindCommand:
		return r.handleCommand(ctx, in, respond)
	case KindButton:
		return r.handleButton(ctx, in, respond)
	case KindSelect:
		return r.handleSelect(ctx, in, respond)
	case KindModal:
		return r.handleModal(ctx, in, respond)
	}
	return apperrors.NewValidationError("unsupported interaction", map[string]any{"kind": string(in.Kind)})
}

func (r *Router) handleCommand(ctx context.Context, in Interaction, respond Responder) error {
	switch in.Name {
	case "panel":
		if err := r.requireRole(ctx, in.ActorID, r.roles.Bestuur); err != nil {
			return err
		}
		target := in.Option("kanaal")
		if target == "" {
			target = in.ChannelID
		}
		if err := r.tickets.PostPanel(ctx, in.ActorID, in.ActorTag, target); err != nil {
			return err
		}
		return respond.ReplyEphemeral(platform.Outgoing{Content: "✅ Panel geplaatst."})

	case "move":
		if err := r.requireRole(ctx, in.ActorID, r.roles.Support); err != nil {
			return err
		}
		target := domain.CategoryKey(in.Option("categorie"))
		if err := r.tickets.Move(ctx, in.ActorID, in.ActorTag, in.ChannelID, target); err != nil {
			return err
		}
		return respond.ReplyEphemeral(platform.Outgoing{Content: "✅ Ticket verplaatst."})

	case "sluiten":
		if err := r.requireRole(ctx, in.ActorID, r.roles.Support); err != nil {
			return err
		}
		if err := r.tickets.Close(ctx, in.ActorID, in.ActorTag, in.ChannelID, in.Option("reden")); err != nil {
			return err
		}
		return respond.ReplyEphemeral(platform.Outgoing{Content: "✅ Ticket gesloten."})

	case "rename":
		if err := r.requireRole(ctx, in.ActorID, r.roles.Support); err != nil {
			return err
		}
		name := in.Option("naam")
		if name == "" {
			return apperrors.NewValidationError("naam is verplicht", nil)
		}
		if err := r.tickets.Rename(ctx, in.ActorID, in.ActorTag, in.ChannelID, name); err != nil {
			return err
		}
		return respond.ReplyEphemeral(platform.Outgoing{Content: "✅ Ticket hernoemd."})

	case "prioriteit":
		if err := r.requireRole(ctx, in.ActorID, r.roles.Support); err != nil {
			return err
		}
		level, err := strconv.Atoi(in.Option("niveau"))
		if err != nil {
			return apperrors.NewValidationError("niveau moet 1-4 zijn", nil)
		}
		if err := r.tickets.SetPriority(ctx, in.ChannelID, level); err != nil {
			return err
		}
		return respond.ReplyEphemeral(platform.Outgoing{Content: "✅ Prioriteit aangepast."})

	case "purge":
		count, _ := strconv.Atoi(in.Option("aantal"))
		deleted, err := r.tickets.Purge(ctx, in.ActorID, in.ActorTag, in.ChannelID, count)
		if err != nil {
			return err
		}
		return respond.ReplyEphemeral(platform.Outgoing{
			Content: fmt.Sprintf("🧹 %d berichten verwijderd.", deleted),
		})

	case "toevoegen":
		if err := r.requireRole(ctx, in.ActorID, r.roles.Support); err != nil {
			return err
		}
		userID := in.Option("gebruiker")
		if userID == "" {
			return apperrors.NewValidationError("gebruiker is verplicht", nil)
		}
		if err := r.tickets.AddUser(ctx, in.ChannelID, userID); err != nil {
			return err
		}
		return respond.ReplyEphemeral(platform.Outgoing{Content: "✅ Gebruiker toegevoegd."})

	case "verwijderen":
		if err := r.requireRole(ctx, in.ActorID, r.roles.Support); err != nil {
			return err
		}
		userID := in.Option("gebruiker")
		if userID == "" {
			return apperrors.NewValidationError("gebruiker is verplicht", nil)
		}
		if err := r.tickets.RemoveUser(ctx, in.ChannelID, userID); err != nil {
			return err
		}
		return respond.ReplyEphemeral(platform.Outgoing{Content: "✅ Gebruiker verwijderd."})

	case "alert":
		if err := r.requireRole(ctx, in.ActorID, r.roles.Support); err != nil {
			return err
		}
		record, err := r.tickets.Ticket(ctx, in.ChannelID)
		if err != nil {
			return err
		}
		if err := r.reminders.StartWatch(ctx, in.ChannelID, record.CreatorID); err != nil {
			return err
		}
		return respond.ReplyEphemeral(platform.Outgoing{Content: "⏰ Alert gezet."})

	case "wiki":
		userID := in.Option("gebruiker")
		if userID == "" {
			return apperrors.NewValidationError("gebruiker is verplicht", nil)
		}
		letter, err := r.templates.Wiki(in.Option("template"), userID, in.ActorID, in.Option("verwijzing"))
		if err != nil {
			topics := strings.Join(r.templates.WikiTopics(), ", ")
			return apperrors.NewNotFound("wiki template", map[string]any{"beschikbaar": topics})
		}
		return respond.Reply(platform.Outgoing{Content: letter})

	case "refund":
		if err := r.requireRole(ctx, in.ActorID, r.roles.Support); err != nil {
			return err
		}
		record, err := r.tickets.Ticket(ctx, in.ChannelID)
		if err != nil {
			return err
		}
		approved := in.Option("besluit") == "goedgekeurd"
		embed := r.templates.RefundVerdict(approved, record.CreatorID, in.Option("reden"))
		return respond.Reply(platform.Outgoing{Embeds: []platform.Embed{embed}})

	case "sollicitatie":
		if err := r.requireRole(ctx, in.ActorID, r.roles.StaffCoordinator); err != nil {
			return err
		}
		if _, err := r.tickets.Ticket(ctx, in.ChannelID); err != nil {
			return err
		}
		accepted := in.Option("besluit") == "aangenomen"
		embeds := r.templates.SollicitatieVerdict(accepted, in.ActorTag, in.Option("rang"), in.Option("reden"))
		return respond.Reply(platform.Outgoing{Embeds: embeds})

	case "ontsla":
		if err := r.requireRole(ctx, in.ActorID, r.roles.Bestuur); err != nil {
			return err
		}
		staffID := in.Option("gebruiker")
		if staffID == "" {
			return apperrors.NewValidationError("gebruiker is verplicht", nil)
		}
		embed, err := r.staff.Dismiss(ctx, in.ActorTag, staffID, in.Option("reden"))
		if err != nil {
			return err
		}
		return respond.Reply(platform.Outgoing{Embeds: []platform.Embed{embed}})
	}
	return apperrors.NewValidationError("onbekend commando", map[string]any{"naam": in.Name})
}

func (r *Router) handleButton(ctx context.Context, in Interaction, respond Responder) error {
	switch {
	case in.Name == "claim_ticket":
		if err := r.tickets.Claim(ctx, in.ActorID, in.ActorTag, in.ChannelID); err != nil {
			return err
		}
		return respond.ReplyEphemeral(platform.Outgoing{Content: "✅ Ticket geclaimed."})

	case in.Name == "unclaim_ticket":
		if err := r.tickets.Unclaim(ctx, in.ActorID, in.ActorTag, in.ChannelID); err != nil {
			return err
		}
		return respond.ReplyEphemeral(platform.Outgoing{Content: "✅ Ticket unclaimed."})

	case in.Name == "close_ticket":
		return respond.ShowModal(Modal{
			ID:    "close_reason",
			Title: "Ticket sluiten",
			Fields: []ModalField{{
				ID:          "reden",
				Label:       "Reden van sluiting",
				Placeholder: "Waarom wordt dit ticket gesloten?",
				Paragraph:   true,
			}},
		})

	case strings.HasPrefix(in.Name, "review_"):
		stars, err := strconv.Atoi(strings.TrimPrefix(in.Name, "review_"))
		if err != nil {
			return apperrors.NewValidationError("ongeldige beoordeling", nil)
		}
		handle, err := r.reviews.IssueHandle(in.ActorID, stars)
		if err != nil {
			return err
		}
		return respond.ShowModal(Modal{
			ID:    "feedback:" + handle,
			Title: "Jouw feedback",
			Fields: []ModalField{{
				ID:          "feedback",
				Label:       "Wat vond je van onze hulp?",
				Placeholder: "Vertel ons wat goed ging of beter kan...",
				Paragraph:   true,
			}},
		})
	}
	return apperrors.NewValidationError("onbekende knop", map[string]any{"id": in.Name})
}

func (r *Router) handleSelect(ctx context.Context, in Interaction, respond Responder) error {
	if in.Name != "ticket_select" {
		return apperrors.NewValidationError("onbekend keuzemenu", map[string]any{"id": in.Name})
	}
	if len(in.Values) == 0 {
		return apperrors.NewValidationError("geen categorie gekozen", nil)
	}
	category := in.Values[0]
	return respond.ShowModal(Modal{
		ID:    "ticket_" + category,
		Title: "Ticket aanmaken",
		Fields: []ModalField{{
			ID:          "details",
			Label:       "Waar kunnen we je mee helpen?",
			Placeholder: "Omschrijf je vraag of probleem...",
			Paragraph:   true,
			Required:    true,
		}},
	})
}

func (r *Router) handleModal(ctx context.Context, in Interaction, respond Responder) error {
	switch {
	case strings.HasPrefix(in.Name, "ticket_"):
		category := domain.CategoryKey(strings.TrimPrefix(in.Name, "ticket_"))
		record, err := r.tickets.Create(ctx, in.ActorID, category, in.Field("details"))
		if err != nil {
			return err
		}
		return respond.ReplyEphemeral(platform.Outgoing{
			Content: fmt.Sprintf("🎫 Je ticket is aangemaakt: <#%s>", record.ChannelID),
		})

	case in.Name == "close_reason":
		if err := r.tickets.Close(ctx, in.ActorID, in.ActorTag, in.ChannelID, in.Field("reden")); err != nil {
			return err
		}
		return respond.ReplyEphemeral(platform.Outgoing{Content: "✅ Ticket gesloten."})

	case strings.HasPrefix(in.Name, "feedback:"):
		handle, err := r.reviews.ParseHandle(strings.TrimPrefix(in.Name, "feedback:"))
		if err != nil {
			return err
		}
		if err := r.reviews.Submit(ctx, handle, in.ActorTag, in.Field("feedback")); err != nil {
			return err
		}
		return respond.ReplyEphemeral(platform.Outgoing{Content: "💚 Bedankt voor je feedback!"})
	}
	return apperrors.NewValidationError("onbekend formulier", map[string]any{"id": in.Name})
}

// NotifyMessage feeds channel activity into the reminder registry. Bot
// messages do not count as activity.
func (r *Router) NotifyMessage(channelID string, automated bool) {
	if automated || r.reminders == nil {
		return
	}
	r.reminders.NotifyMessage(channelID)
}

func (r *Router) requireRole(ctx context.Context, actorID, roleID string) error {
	if roleID == "" {
		return apperrors.NewNotAuthorized("deze actie is niet beschikbaar")
	}
	ok, err := r.platform.HasRole(ctx, actorID, roleID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewNotAuthorized("je hebt geen toestemming voor deze actie")
	}
	return nil
}
