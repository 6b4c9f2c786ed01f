package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/paulaveiga/doceria-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultImportName = "Criação Paula Veiga"

// SyncService imports Instagram media as catalog entries
type SyncService struct {
	db     *gorm.DB
	client *Client
}

// NewSyncService creates a new sync service
func NewSyncService(db *gorm.DB, client *Client) *SyncService {
	return &SyncService{
		db:     db,
		client: client,
	}
}

// Result summarizes one sync run
type Result struct {
	Imported int
	Skipped  int
	Message  string
}

// Sync pulls recent media and creates cakes for entries not seen before.
// One shot, no retries: a failed run is reported and abandoned.
func (s *SyncService) Sync(ctx context.Context, trigger string) (*Result, error) {
	logEntry := model.SyncLog{
		Trigger:   trigger,
		Status:    "running",
		StartedAt: time.Now(),
	}
	s.db.Create(&logEntry)

	result, err := s.run(ctx)
	now := time.Now()
	logEntry.CompletedAt = &now

	if err != nil {
		logEntry.Status = "failed"
		logEntry.Message = err.Error()
		s.db.Save(&logEntry)
		return nil, err
	}

	logEntry.Status = "completed"
	logEntry.Imported = result.Imported
	logEntry.Skipped = result.Skipped
	logEntry.Message = result.Message
	if meta, merr := json.Marshal(map[string]interface{}{
		"imported": result.Imported,
		"skipped":  result.Skipped,
	}); merr == nil {
		logEntry.Metadata = datatypes.JSON(meta)
	}
	s.db.Save(&logEntry)

	return result, nil
}

func (s *SyncService) run(ctx context.Context) (*Result, error) {
	var settings model.SiteSetting
	err := s.db.Where("id = ?", model.SiteSettingID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || settings.InstagramAccessToken == "" || settings.InstagramUserID == "" {
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, err
	}

	media, err := s.client.FetchMedia(ctx, settings.InstagramUserID, settings.InstagramAccessToken, 20)
	if err != nil {
		return nil, err
	}

	// Imports land in the first category so they stay filterable
	var defaultCategory model.Category
	categoryID := ""
	if err := s.db.Order("created_at ASC").First(&defaultCategory).Error; err == nil {
		categoryID = defaultCategory.ID
	}

	imported, skipped := 0, 0
	for _, item := range media {
		if item.MediaType != MediaTypeImage && item.MediaType != MediaTypeCarousel {
			skipped++
			continue
		}

		// Dedup on permalink so re-running a sync is harmless
		var existing model.Cake
		if err := s.db.Where("instagram_url = ?", item.Permalink).First(&existing).Error; err == nil {
			skipped++
			continue
		}

		imageURL := item.ImageURL()
		if imageURL == "" {
			skipped++
			continue
		}

		name := item.Caption
		if name == "" {
			name = defaultImportName
		}
		if len([]rune(name)) > 50 {
			name = string([]rune(name)[:50])
		}

		description := item.Caption
		if description == "" {
			description = "Mais uma delícia da Paula Veiga!"
		}

		cake := model.Cake{
			Name:         name,
			Description:  description,
			Price:        0,
			CategoryID:   categoryID,
			ImageURL:     imageURL,
			InstagramURL: item.Permalink,
			Featured:     false,
		}
		if err := s.db.Create(&cake).Error; err != nil {
			return nil, fmt.Errorf("failed to store imported media: %w", err)
		}
		imported++
	}

	return &Result{
		Imported: imported,
		Skipped:  skipped,
		Message:  fmt.Sprintf("%d fotos importadas do Instagram com sucesso!", imported),
	}, nil
}
