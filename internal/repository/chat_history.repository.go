package repository

import (
	"context"
	"database/sql"
	"fmt"

	"clarifi/internal/domain"

	"github.com/google/uuid"
)

// ChatHistoryRepository persists conversation turns per user, ordered by
// time. History is advisory context - callers must tolerate persistence
// failures without failing the conversation itself.
type ChatHistoryRepository interface {
	Add(ctx context.Context, userID uuid.UUID, turn domain.ChatTurn) error
	List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ChatTurn, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type chatHistoryRepositoryHandler struct {
	Db *sql.DB
}

func NewChatHistoryRepository(db *sql.DB) ChatHistoryRepository {
	return chatHistoryRepositoryHandler{Db: db}
}

func (h chatHistoryRepositoryHandler) Add(ctx context.Context, userID uuid.UUID, turn domain.ChatTurn) error {
	query := `
		INSERT INTO chat_turns (user_id, role, content, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := h.Db.ExecContext(ctx, query, userID, string(turn.Role), turn.Content, turn.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert chat turn: %w", err)
	}
	return nil
}

// List returns the most recent turns in chronological order. limit <= 0
// means no limit.
func (h chatHistoryRepositoryHandler) List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ChatTurn, error) {
	query := `
		SELECT role, content, created_at
		FROM chat_turns
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	args := []interface{}{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := h.Db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat turns: %w", err)
	}
	defer rows.Close()

	turns := []domain.ChatTurn{}
	for rows.Next() {
		var (
			role string
			turn domain.ChatTurn
		)
		if err := rows.Scan(&role, &turn.Content, &turn.Timestamp); err != nil {
			return nil, err
		}
		turn.Role = domain.ChatRole(role)
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// query is newest-first for the LIMIT; callers want oldest-first
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

func (h chatHistoryRepositoryHandler) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := h.Db.ExecContext(ctx, `DELETE FROM chat_turns WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}
