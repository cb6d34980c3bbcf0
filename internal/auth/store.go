package auth

import (
	"database/sql"
	"fmt"
	"time"

	"stacklens/internal/logging"
)

// APIKey is one issued API key. The raw token is never stored, only
// its bcrypt hash and a short prefix for lookup.
type APIKey struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	TokenHash   string     `json:"-"`
	TokenPrefix string     `json:"tokenPrefix"`
	CreatedAt   time.Time  `json:"createdAt"`
	Revoked     bool       `json:"revoked"`
	RevokedAt   *time.Time `json:"revokedAt,omitempty"`
}

// KeyStore provides persistence for API keys using SQLite.
type KeyStore struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewKeyStore creates a key store on an existing database connection.
func NewKeyStore(db *sql.DB, logger *logging.Logger) *KeyStore {
	return &KeyStore{db: db, logger: logger}
}

// InitSchema creates the required tables if they don't exist
func (s *KeyStore) InitSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS api_keys (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			token_hash TEXT NOT NULL,
			token_prefix TEXT NOT NULL,
			created_at TEXT NOT NULL,
			revoked INTEGER NOT NULL DEFAULT 0,
			revoked_at TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_api_keys_prefix ON api_keys(token_prefix);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init api key schema: %w", err)
	}
	return nil
}

// Issue creates and persists a new API key. It returns the stored key
// and the raw token, which is shown to the caller exactly once.
func (s *KeyStore) Issue(name string) (*APIKey, string, error) {
	id, err := GenerateKeyID()
	if err != nil {
		return nil, "", err
	}
	token, prefix, err := GenerateToken()
	if err != nil {
		return nil, "", err
	}
	hash, err := HashToken(token)
	if err != nil {
		return nil, "", err
	}

	key := &APIKey{
		ID:          id,
		Name:        name,
		TokenHash:   hash,
		TokenPrefix: prefix,
		CreatedAt:   time.Now().UTC(),
	}

	_, err = s.db.Exec(`
		INSERT INTO api_keys (id, name, token_hash, token_prefix, created_at, revoked)
		VALUES (?, ?, ?, ?, ?, 0)`,
		key.ID, key.Name, key.TokenHash, key.TokenPrefix,
		key.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, "", fmt.Errorf("save api key: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Issued API key", map[string]interface{}{
			"id":   key.ID,
			"name": key.Name,
		})
	}

	return key, token, nil
}

// Verify checks a raw bearer token against the stored keys. It returns
// the matching key, or nil when the token is unknown or revoked.
func (s *KeyStore) Verify(token string) (*APIKey, error) {
	if !IsValidTokenFormat(token) {
		return nil, nil
	}

	prefix := ExtractTokenPrefix(token)
	rows, err := s.db.Query(`
		SELECT id, name, token_hash, token_prefix, created_at
		FROM api_keys WHERE token_prefix = ? AND revoked = 0`, prefix)
	if err != nil {
		return nil, fmt.Errorf("lookup api key: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key APIKey
		var createdAt string
		if err := rows.Scan(&key.ID, &key.Name, &key.TokenHash, &key.TokenPrefix, &createdAt); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		key.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

		if VerifyToken(token, key.TokenHash) {
			return &key, nil
		}
	}
	return nil, rows.Err()
}

// Revoke marks an API key as revoked.
func (s *KeyStore) Revoke(id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(`
		UPDATE api_keys SET revoked = 1, revoked_at = ? WHERE id = ? AND revoked = 0`,
		now, id)
	if err != nil {
		return fmt.Errorf("revoke api key: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("api key %s not found or already revoked", id)
	}
	return nil
}

// List returns all keys, optionally including revoked ones.
func (s *KeyStore) List(includeRevoked bool) ([]*APIKey, error) {
	query := `
		SELECT id, name, token_prefix, created_at, revoked, revoked_at
		FROM api_keys`
	if !includeRevoked {
		query += " WHERE revoked = 0"
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []*APIKey
	for rows.Next() {
		var key APIKey
		var createdAt string
		var revoked int
		var revokedAt sql.NullString
		if err := rows.Scan(&key.ID, &key.Name, &key.TokenPrefix, &createdAt, &revoked, &revokedAt); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		key.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		key.Revoked = revoked != 0
		if revokedAt.Valid {
			t, _ := time.Parse(time.RFC3339, revokedAt.String)
			key.RevokedAt = &t
		}
		keys = append(keys, &key)
	}
	return keys, rows.Err()
}
