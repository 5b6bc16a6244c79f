package store

import (
	"context"
	"time"

	"github.com/localnerve/securepulse/internal/models"
	"gorm.io/gorm"
)

// IdentityStore persists users, their bracelets and their emergency contacts.
type IdentityStore struct {
	DB *gorm.DB
}

// ProfileUpdate holds the optional profile fields. Nil fields are left unchanged.
type ProfileUpdate struct {
	Name  *string
	Phone *string
	Plan  *models.Plan
}

// BraceletUpdate holds the optional bracelet fields. Nil fields are left unchanged.
type BraceletUpdate struct {
	Status   *models.BraceletStatus
	Battery  *int
	Nickname *string
}

func (s *IdentityStore) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.DB.WithContext(ctx).Create(user).Error)
}

func (s *IdentityStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindUser loads a user by id, optionally with their emergency contacts.
func (s *IdentityStore) FindUser(ctx context.Context, id string, withContacts bool) (*models.User, error) {
	query := s.DB.WithContext(ctx)
	if withContacts {
		query = query.Preload("EmergencyContacts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
	}

	var user models.User
	if err := query.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *IdentityStore) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*models.User, error) {
	values := map[string]any{}
	if update.Name != nil {
		values["name"] = *update.Name
	}
	if update.Phone != nil {
		values["phone"] = *update.Phone
	}
	if update.Plan != nil {
		values["plan"] = *update.Plan
	}

	if len(values) > 0 {
		result := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(values)
		if result.Error != nil {
			return nil, translate(result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	return s.FindUser(ctx, id, false)
}

// CreateBracelet inserts the bracelet and bumps the owner's bracelet count atomically.
func (s *IdentityStore) CreateBracelet(ctx context.Context, bracelet *models.Bracelet) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bracelet).Error; err != nil {
			return err
		}
		result := tx.Model(&models.User{}).
			Where("id = ?", bracelet.UserID).
			UpdateColumn("bracelet_count", gorm.Expr("bracelet_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err)
}

func (s *IdentityStore) ListBracelets(ctx context.Context, ownerID string) ([]models.Bracelet, error) {
	var bracelets []models.Bracelet
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Find(&bracelets).Error
	if err != nil {
		return nil, translate(err)
	}
	return bracelets, nil
}

// FindBracelet returns the bracelet only when ownerID owns it.
func (s *IdentityStore) FindBracelet(ctx context.Context, ownerID, braceletID string) (*models.Bracelet, error) {
	var bracelet models.Bracelet
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", braceletID, ownerID).
		First(&bracelet).Error
	if err != nil {
		return nil, translate(err)
	}
	return &bracelet, nil
}

// UpdateBracelet applies update and stamps lastSync. Bracelets not owned by ownerID are untouched.
func (s *IdentityStore) UpdateBracelet(ctx context.Context, ownerID, braceletID string, update BraceletUpdate, syncedAt time.Time) (*models.Bracelet, error) {
	values := map[string]any{"last_sync": syncedAt}
	if update.Status != nil {
		values["status"] = *update.Status
	}
	if update.Battery != nil {
		values["battery"] = *update.Battery
	}
	if update.Nickname != nil {
		values["nickname"] = *update.Nickname
	}

	result := s.DB.WithContext(ctx).
		Model(&models.Bracelet{}).
		Where("id = ? AND user_id = ?", braceletID, ownerID).
		Updates(values)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return s.FindBracelet(ctx, ownerID, braceletID)
}

func (s *IdentityStore) CreateContact(ctx context.Context, contact *models.EmergencyContact) error {
	return translate(s.DB.WithContext(ctx).Create(contact).Error)
}

func (s *IdentityStore) ListContacts(ctx context.Context, ownerID string) ([]models.EmergencyContact, error) {
	var contacts []models.EmergencyContact
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Find(&contacts).Error
	if err != nil {
		return nil, translate(err)
	}
	return contacts, nil
}

func (s *IdentityStore) DeleteContact(ctx context.Context, ownerID, contactID string) error {
	result := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", contactID, ownerID).
		Delete(&models.EmergencyContact{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
