package models

import (
	"context"
	"encoding/json"
	"errors"
	"html"
	"strings"
	"time"

	"github.com/shoplite/retail_backend/config"
	"github.com/shoplite/retail_backend/utils"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID          string          `gorm:"primary_key;size:64" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Contact     string          `gorm:"size:64;not null;index:idx_users_contact_business,unique" json:"contact"`
	Password    string          `gorm:"size:255;not null" json:"password,omitempty"`
	Role        UserRole        `gorm:"size:20;default:employee" json:"role"`
	Permissions json.RawMessage `gorm:"type:json" json:"permissions"`
	BusinessId  string          `gorm:"size:64;not null;index;index:idx_users_contact_business,unique" json:"businessId"`
	ShopId      *string         `gorm:"size:64;index" json:"shopId"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

type NewUser struct {
	ID          string          `json:"id"`
	Name        string          `json:"name" binding:"required"`
	Contact     string          `json:"contact" binding:"required"`
	Password    string          `json:"password" binding:"required"`
	Role        UserRole        `json:"role"`
	Permissions json.RawMessage `json:"permissions"`
	BusinessId  string          `json:"businessId" binding:"required"`
	ShopId      string          `json:"shopId"`
}

func (result *User) PrepareGive() {
	result.Password = ""
}

// PermissionList decodes the stored JSON permissions into a string slice.
// Malformed or empty JSON yields an empty list.
func (result *User) PermissionList() []string {
	var perms []string
	if len(result.Permissions) == 0 {
		return perms
	}
	_ = json.Unmarshal(result.Permissions, &perms)
	return utils.UniqueSlice(perms)
}

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {
	db := config.GetDB()
	var count int64

	err := db.WithContext(ctx).Model(&User{}).
		Where("contact = ? AND business_id = ?", input.Contact, input.BusinessId).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("duplicate contact")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = UserRoleEmployee
	}
	if !role.IsValid() {
		return nil, errors.New("invalid role")
	}

	user := User{
		ID:          utils.ResourceId(input.ID),
		Name:        html.EscapeString(strings.TrimSpace(input.Name)),
		Contact:     strings.TrimSpace(input.Contact),
		Password:    string(hashedPassword),
		Role:        role,
		Permissions: input.Permissions,
		BusinessId:  input.BusinessId,
		ShopId:      utils.NilIfEmpty(input.ShopId),
	}

	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	user.PrepareGive()
	return &user, nil
}

func GetUser(ctx context.Context, id string) (*User, error) {
	db := config.GetDB()
	var result User

	if err := db.WithContext(ctx).Where("id = ?", id).Take(&result).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	result.PrepareGive()
	return &result, nil
}

func GetUsersByBusiness(ctx context.Context, businessId string) ([]*User, error) {
	db := config.GetDB()
	var results []*User

	if err := db.WithContext(ctx).Where("business_id = ?", businessId).Find(&results).Error; err != nil {
		return nil, err
	}
	for _, u := range results {
		u.PrepareGive()
	}
	return results, nil
}

func UpdateUser(ctx context.Context, id string, attrs map[string]interface{}) (*User, error) {
	db := config.GetDB()
	var user User

	if err := db.WithContext(ctx).Where("id = ?", id).Take(&user).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	// Incoming plaintext passwords are re-hashed before persisting.
	if raw, ok := attrs["password"]; ok {
		plain, _ := raw.(string)
		if plain == "" {
			delete(attrs, "password")
		} else {
			hashed, err := utils.HashPassword(plain)
			if err != nil {
				return nil, err
			}
			attrs["password"] = string(hashed)
		}
	}

	if err := db.WithContext(ctx).Model(&user).Updates(attrs).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&user).Error; err != nil {
		return nil, err
	}
	user.PrepareGive()
	return &user, nil
}

func DeleteUser(ctx context.Context, id string) error {
	db := config.GetDB()

	res := db.WithContext(ctx).Where("id = ?", id).Delete(&User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}

// LoginUser checks contact+password within a business and returns the user
// plus a signed token.
func LoginUser(ctx context.Context, contact string, password string, businessId string) (*User, string, error) {
	db := config.GetDB()
	user := User{}

	err := db.WithContext(ctx).Model(&User{}).
		Where("contact = ? AND business_id = ?", contact, businessId).
		Take(&user).Error
	if err != nil {
		return nil, "", utils.ErrorRecordNotFound
	}

	if err := utils.ComparePassword(user.Password, password); err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return nil, "", errors.New("invalid password")
		}
		return nil, "", err
	}

	shopId := utils.DereferencePtr(user.ShopId)
	token, err := utils.JwtGenerate(user.ID, user.BusinessId, string(user.Role), user.PermissionList(), shopId)
	if err != nil {
		return nil, "", err
	}

	user.PrepareGive()
	return &user, token, nil
}
