package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"odinary_go/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Well-known record keys. Meme and comment payloads are stored as JSON
// blobs under these keys; studio settings hold plain string values.
const (
	KeyMemes               = "odinary_memes"
	KeyTopText             = "odinary_topText"
	KeyBottomText          = "odinary_bottomText"
	KeySelectedTemplateURL = "odinary_selectedTemplateUrl"
	KeyTextColor           = "odinary_textColor"
	KeyOutlineColor        = "odinary_outlineColor"

	commentsKeyPrefix = "comments_"
)

// Record is a single persisted key/value entry.
type Record struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

// Storage defines the interface for data persistence
type Storage struct {
	db *gorm.DB
}

// NewStorage creates a new SQLite storage instance at the default
// per-user location.
func NewStorage() (*Storage, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve DB path: %w", err)
	}
	return NewStorageAt(dbPath)
}

// NewStorageAt opens (or creates) the database at an explicit path.
func NewStorageAt(dbPath string) (*Storage, error) {
	// Ensure directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto Migration
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// getDBPath resolves the database file path based on OS
func getDBPath() (string, error) {
	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "Odinary", "data", "odinary.db"), nil
}

func (s *Storage) put(key, value string) error {
	rec := Record{Key: key, Value: value}
	return s.db.Save(&rec).Error
}

func (s *Storage) get(key string) (string, bool, error) {
	var rec Record
	err := s.db.First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil // Not found is not an error
	}
	if err != nil {
		return "", false, err
	}
	return rec.Value, true, nil
}

// ======================================================================================
// Meme Operations
// ======================================================================================

// SaveMemes persists the full meme collection as one JSON document.
func (s *Storage) SaveMemes(memes []domain.Meme) error {
	data, err := json.Marshal(memes)
	if err != nil {
		return fmt.Errorf("failed to encode memes: %w", err)
	}
	return s.put(KeyMemes, string(data))
}

// LoadMemes returns the stored collection; ok is false when nothing has
// been saved yet.
func (s *Storage) LoadMemes() ([]domain.Meme, bool, error) {
	raw, ok, err := s.get(KeyMemes)
	if err != nil || !ok {
		return nil, false, err
	}

	var memes []domain.Meme
	if err := json.Unmarshal([]byte(raw), &memes); err != nil {
		return nil, false, fmt.Errorf("failed to decode memes: %w", err)
	}
	return memes, true, nil
}

// ======================================================================================
// Comment Operations
// ======================================================================================

// SaveComments persists the comment thread of one meme.
func (s *Storage) SaveComments(memeID string, comments []domain.Comment) error {
	data, err := json.Marshal(comments)
	if err != nil {
		return fmt.Errorf("failed to encode comments: %w", err)
	}
	return s.put(commentsKeyPrefix+memeID, string(data))
}

// LoadComments returns the comment thread of one meme; ok is false when
// the meme has never been commented on.
func (s *Storage) LoadComments(memeID string) ([]domain.Comment, bool, error) {
	raw, ok, err := s.get(commentsKeyPrefix + memeID)
	if err != nil || !ok {
		return nil, false, err
	}

	var comments []domain.Comment
	if err := json.Unmarshal([]byte(raw), &comments); err != nil {
		return nil, false, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, true, nil
}

// ======================================================================================
// Setting Operations
// ======================================================================================

// SaveSetting saves a studio setting
func (s *Storage) SaveSetting(key, value string) error {
	return s.put(key, value)
}

// LoadSetting retrieves a studio setting by key
func (s *Storage) LoadSetting(key string) (string, bool, error) {
	return s.get(key)
}
