package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/baditaflorin/go_sentiment_flow/internal/core/domain"
	"github.com/baditaflorin/go_sentiment_flow/internal/ports"
)

// SessionRepository implements ports.SessionRepository on the sessions
// index. Session documents use the client session ID as the document ID,
// which makes get-or-create a plain document lookup.
type SessionRepository struct {
	store *Store
}

// NewSessionRepository creates a session repository over the given store.
func NewSessionRepository(store *Store) *SessionRepository {
	return &SessionRepository{store: store}
}

var _ ports.SessionRepository = (*SessionRepository)(nil)

// GetOrCreate returns the session for the given ID, creating it on first
// sight.
func (r *SessionRepository) GetOrCreate(ctx context.Context, sessionID, userAgent, ipAddress string) (domain.Session, error) {
	res, err := r.store.es.Get(
		sessionsIndex,
		sessionID,
		r.store.es.Get.WithContext(ctx),
	)
	if err != nil {
		return domain.Session{}, fmt.Errorf("elastic: session lookup failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		var doc struct {
			Source domain.Session `json:"_source"`
		}
		if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
			return domain.Session{}, err
		}
		return doc.Source, nil
	}
	if res.StatusCode != 404 {
		return domain.Session{}, fmt.Errorf("elastic: session lookup returned status %s", res.Status())
	}

	now := time.Now().UTC()
	session := domain.Session{
		ID:           sessionID,
		SessionID:    sessionID,
		CreatedAt:    now,
		LastActivity: now,
		ModelsUsed:   []string{},
		UserAgent:    userAgent,
		IPAddress:    ipAddress,
	}
	if err := r.index(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

// UpdateActivity bumps the session's activity timestamp and analysis count
// and records the model used. The update runs as a script so concurrent
// requests do not clobber each other's counters.
func (r *SessionRepository) UpdateActivity(ctx context.Context, sessionID, modelName string) error {
	body := map[string]interface{}{
		"script": map[string]interface{}{
			"source": `
				ctx._source.last_activity = params.now;
				ctx._source.total_analyses += 1;
				if (!ctx._source.models_used.contains(params.model)) {
					ctx._source.models_used.add(params.model);
				}
			`,
			"lang": "painless",
			"params": map[string]interface{}{
				"now":   time.Now().UTC().Format(time.RFC3339),
				"model": modelName,
			},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	res, err := r.store.es.Update(
		sessionsIndex,
		sessionID,
		bytes.NewReader(payload),
		r.store.es.Update.WithContext(ctx),
		r.store.es.Update.WithRetryOnConflict(3),
	)
	if err != nil {
		return fmt.Errorf("elastic: session update failed: %w", err)
	}
	return closeChecked(res, "update session")
}

// ActiveSessions returns sessions active at or after the cutoff, most
// recent first.
func (r *SessionRepository) ActiveSessions(ctx context.Context, since time.Time, limit int) ([]domain.Session, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"range": map[string]interface{}{
				"last_activity": map[string]interface{}{
					"gte": since.UTC().Format(time.RFC3339),
				},
			},
		},
		"sort": []map[string]interface{}{
			{"last_activity": map[string]interface{}{"order": "desc"}},
		},
		"size": limit,
	}

	var envelope struct {
		Hits struct {
			Hits []struct {
				Source domain.Session `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := r.store.search(ctx, sessionsIndex, query, &envelope); err != nil {
		return nil, err
	}

	sessions := make([]domain.Session, 0, len(envelope.Hits.Hits))
	for _, hit := range envelope.Hits.Hits {
		sessions = append(sessions, hit.Source)
	}
	return sessions, nil
}

func (r *SessionRepository) index(ctx context.Context, session domain.Session) error {
	body, err := json.Marshal(session)
	if err != nil {
		return err
	}

	res, err := r.store.es.Index(
		sessionsIndex,
		bytes.NewReader(body),
		r.store.es.Index.WithContext(ctx),
		r.store.es.Index.WithDocumentID(session.SessionID),
	)
	if err != nil {
		return fmt.Errorf("elastic: indexing session failed: %w", err)
	}
	return closeChecked(res, "index session")
}
