package core

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"saarthi/saarthi/services/extractor"
	"saarthi/saarthi/services/intent"
	"saarthi/saarthi/services/llm"
	"saarthi/saarthi/services/maps"
	"saarthi/saarthi/services/prompt"
	"saarthi/saarthi/services/session"
	"saarthi/saarthi/utils/logging"
	"saarthi/saarthi/utils/types"

	"go.uber.org/zap"
)

type Status string

const (
	StatusSuccess  Status = "success"
	StatusFallback Status = "fallback"
)

// CategoryGenerated tags stateless query answers that came from the generator.
const CategoryGenerated intent.Category = "llm_processed"

var ErrEmptyUtterance = errors.New("utterance is required")

const defaultArchiveTimeout = 5 * time.Second

// TurnArchiver persists successful exchanges outside the in-memory store.
type TurnArchiver interface {
	ArchiveTurn(ctx context.Context, sessionID, role, content string) error
}

// DirectionsFinder fetches a route when a reply switches destination.
type DirectionsFinder interface {
	Directions(ctx context.Context, origin, destination, mode string, departure *time.Time) maps.DirectionsResult
}

// Request is one user utterance. SessionID wins over Context.SessionID.
type Request struct {
	SessionID    string
	Utterance    string
	Context      *types.NavigationContext
	Location     *types.Location
	SystemPrompt string
}

// Reply always carries a speakable Text and the session to continue with.
type Reply struct {
	Text              string
	SessionID         string
	Status            Status
	Category          intent.Category
	Slots             map[string]interface{}
	DestinationChange string
	NewDirections     *maps.DirectionsResult
}

type Orchestrator struct {
	store            *session.Store
	generator        llm.Generator
	classifier       *intent.Classifier
	extractor        *extractor.Extractor
	directions       DirectionsFinder
	archiver         TurnArchiver
	archiveTimeout   time.Duration
	persistFallbacks bool
}

type Option func(*Orchestrator)

func WithArchiver(a TurnArchiver) Option {
	return func(o *Orchestrator) { o.archiver = a }
}

func WithDirections(d DirectionsFinder) Option {
	return func(o *Orchestrator) { o.directions = d }
}

// WithPersistFallbacks stores canned fallback replies as assistant turns.
func WithPersistFallbacks(persist bool) Option {
	return func(o *Orchestrator) { o.persistFallbacks = persist }
}

// NewOrchestrator wires the conversation pipeline. A nil generator means every
// turn is answered by the classifier.
func NewOrchestrator(store *session.Store, generator llm.Generator, classifier *intent.Classifier, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:          store,
		generator:      generator,
		classifier:     classifier,
		extractor:      extractor.New(extractor.DefaultRules()...),
		archiveTimeout: defaultArchiveTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Respond runs one conversational turn. The only error is ErrEmptyUtterance;
// every other failure resolves to a fallback reply.
func (o *Orchestrator) Respond(ctx context.Context, req Request) (Reply, error) {
	defer logging.LogDuration(ctx, "orchestrator_respond")()

	utterance := strings.TrimSpace(req.Utterance)
	if utterance == "" {
		return Reply{}, ErrEmptyUtterance
	}
	id := req.SessionID
	if id == "" && req.Context != nil {
		id = req.Context.SessionID
	}

	userTurn := prompt.FormatUserTurn(utterance, req.Context)
	sess, err := o.appendUserTurn(id, req.SystemPrompt, userTurn)
	if err != nil {
		logging.ErrorLogger.Error("could not record user turn", zap.String("session_id", id), zap.Error(err))
		return o.fallback(ctx, sess.ID, req, utterance), nil
	}

	raw, err := o.generate(ctx, prompt.Format(sess))
	if err != nil {
		logging.AppLogger.Info("generation failed, using fallback",
			zap.String("session_id", sess.ID), zap.Error(err))
		return o.fallback(ctx, sess.ID, req, utterance), nil
	}
	text := o.extractor.Clean(raw)
	if text == "" {
		logging.AppLogger.Info("generation unusable after cleaning, using fallback",
			zap.String("session_id", sess.ID), zap.Error(llm.ErrGenerationEmpty))
		return o.fallback(ctx, sess.ID, req, utterance), nil
	}

	reply := Reply{Text: text, SessionID: sess.ID, Status: StatusSuccess}
	if dest, ok := DestinationChange(text); ok {
		reply.Text = "Okay, changing destination to " + dest
		reply.DestinationChange = dest
		reply.NewDirections = o.reroute(ctx, req.Context.StartPoint(), dest)
	}

	if err := o.store.AddMessage(sess.ID, session.RoleAssistant, reply.Text); err != nil {
		logging.AppLogger.Warn("could not record assistant turn", zap.String("session_id", sess.ID), zap.Error(err))
	}
	o.archive(sess.ID, userTurn, reply.Text)
	return reply, nil
}

// appendUserTurn resolves the session and records the user turn, returning the
// session as it stood right after the append. A session that expires in
// between is recreated once.
func (o *Orchestrator) appendUserTurn(id, systemPrompt, userTurn string) (session.Session, error) {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		sess, created := o.store.GetOrCreate(id, systemPrompt)
		if created {
			logging.AppLogger.Info("new conversation", zap.String("session_id", sess.ID), zap.String("requested_id", id))
		}
		if err = o.store.AddMessage(sess.ID, session.RoleUser, userTurn); err != nil {
			id = sess.ID
			continue
		}
		latest, gerr := o.store.Get(sess.ID)
		if gerr != nil {
			sess.Messages = append(sess.Messages, session.Message{Role: session.RoleUser, Content: userTurn, Timestamp: time.Now()})
			return sess, nil
		}
		return latest, nil
	}
	return session.Session{ID: id}, err
}

// generate calls the generator, turning a missing backend or a panic into
// ErrGenerationUnavailable.
func (o *Orchestrator) generate(ctx context.Context, fullPrompt string) (text string, err error) {
	if o.generator == nil {
		return "", llm.ErrGenerationUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			logging.ErrorLogger.Error("generator panicked", zap.Any("recover", r))
			text, err = "", fmt.Errorf("%w: panic: %v", llm.ErrGenerationUnavailable, r)
		}
	}()
	return o.generator.Generate(ctx, fullPrompt)
}

func (o *Orchestrator) fallback(ctx context.Context, sessionID string, req Request, utterance string) Reply {
	res := o.classifier.Classify(ctx, utterance, req.Location, req.Context)
	if o.persistFallbacks && sessionID != "" {
		if err := o.store.AddMessage(sessionID, session.RoleAssistant, res.Reply); err != nil {
			logging.AppLogger.Warn("could not record fallback turn", zap.String("session_id", sessionID), zap.Error(err))
		}
	}
	return Reply{
		Text:      res.Reply,
		SessionID: sessionID,
		Status:    StatusFallback,
		Category:  res.Category,
		Slots:     res.Slots,
	}
}

func (o *Orchestrator) reroute(ctx context.Context, origin, destination string) *maps.DirectionsResult {
	if o.directions == nil || origin == "" {
		return nil
	}
	res := o.directions.Directions(ctx, origin, destination, "driving", nil)
	if err := res.Err(); err != nil {
		logging.AppLogger.Warn("reroute lookup failed", zap.String("destination", destination), zap.Error(err))
		return nil
	}
	return &res
}

// archive writes both turns off the request's lifetime.
func (o *Orchestrator) archive(sessionID, userTurn, assistantTurn string) {
	if o.archiver == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), o.archiveTimeout)
		defer cancel()
		for _, t := range [][2]string{{string(session.RoleUser), userTurn}, {string(session.RoleAssistant), assistantTurn}} {
			if err := o.archiver.ArchiveTurn(ctx, sessionID, t[0], t[1]); err != nil {
				logging.ErrorLogger.Error("archive turn failed", zap.String("session_id", sessionID), zap.Error(err))
				return
			}
		}
	}()
}

var destinationDirective = regexp.MustCompile(`(?i)okay,?\s+changing destination to\s+`)

// DestinationChange extracts X from "Okay, changing destination to X".
func DestinationChange(reply string) (string, bool) {
	loc := destinationDirective.FindStringIndex(reply)
	if loc == nil {
		return "", false
	}
	dest := strings.TrimRight(strings.TrimSpace(reply[loc[1]:]), ".!?। ")
	return dest, dest != ""
}
