package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TierBenefits struct {
	PointsMultiplier   float64 `json:"pointsMultiplier"`
	DiscountPercentage float64 `json:"discountPercentage"`
	FreeDelivery       bool    `json:"freeDelivery"`
	PrioritySupport    bool    `json:"prioritySupport"`
	ExclusiveOffers    bool    `json:"exclusiveOffers"`
	BirthdayBonus      int     `json:"birthdayBonus"`
}

type LoyaltyTier struct {
	Name          string       `json:"name" validate:"required"`
	MinimumPoints int          `json:"minimumPoints" validate:"gte=0"`
	Color         string       `json:"color"`
	Benefits      TierBenefits `json:"benefits"`
}

type PointsSettings struct {
	EarningRate     float64 `json:"earningRate"`
	MinimumSpend    float64 `json:"minimumSpend"`
	BonusMultiplier float64 `json:"bonusMultiplier"`
	ExpirationDays  int     `json:"expirationDays"`
}

type Campaign struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Type        string     `json:"type" validate:"omitempty,oneof=double_points bonus_points birthday referral seasonal"`
	Multiplier  float64    `json:"multiplier" validate:"gte=0"`
	BonusPoints int        `json:"bonusPoints" validate:"gte=0"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsActive    bool       `json:"isActive"`
}

type LoyaltyProgram struct {
	DTO
	RestaurantID uint                             `gorm:"uniqueIndex" json:"restaurantId"`
	Name         string                           `json:"name"`
	Description  string                           `json:"description"`
	IsActive     bool                             `json:"isActive"`
	Points       PointsSettings                   `gorm:"embedded;embeddedPrefix:points_" json:"pointsSettings"`
	Tiers        datatypes.JSONSlice[LoyaltyTier] `json:"tiers"`
	Campaigns    datatypes.JSONSlice[Campaign]    `json:"campaigns"`
}

func DefaultTiers() []LoyaltyTier {
	return []LoyaltyTier{
		{Name: "Bronze", MinimumPoints: 0, Color: "#CD7F32", Benefits: TierBenefits{PointsMultiplier: 1}},
		{Name: "Silver", MinimumPoints: 500, Color: "#C0C0C0", Benefits: TierBenefits{PointsMultiplier: 1.25, DiscountPercentage: 5, FreeDelivery: true}},
		{Name: "Gold", MinimumPoints: 1500, Color: "#FFD700", Benefits: TierBenefits{PointsMultiplier: 1.5, DiscountPercentage: 10, FreeDelivery: true, PrioritySupport: true}},
		{Name: "Platinum", MinimumPoints: 3000, Color: "#E5E4E2", Benefits: TierBenefits{PointsMultiplier: 2, DiscountPercentage: 15, FreeDelivery: true, PrioritySupport: true, ExclusiveOffers: true, BirthdayBonus: 500}},
	}
}

// BeforeCreate seeds the default tier ladder when none is given.
func (p *LoyaltyProgram) BeforeCreate(tx *gorm.DB) error {
	if len(p.Tiers) == 0 {
		p.Tiers = DefaultTiers()
	}
	if p.Points.EarningRate == 0 {
		p.Points.EarningRate = 1
	}
	if p.Points.BonusMultiplier == 0 {
		p.Points.BonusMultiplier = 1
	}
	if p.Name == "" {
		p.Name = "Loyalty Rewards"
	}
	return nil
}

type RewardConditions struct {
	MinimumOrder       float64                     `json:"minimumOrder"`
	MaxUsesPerCustomer int                         `json:"maxUsesPerCustomer"`
	ValidUntil         *time.Time                  `json:"validUntil"`
	ValidDays          datatypes.JSONSlice[string] `json:"validDays"`
}

type LoyaltyReward struct {
	DTO
	RestaurantID uint             `gorm:"index" json:"restaurantId"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	PointsCost   int              `json:"pointsCost"`
	RewardType   string           `json:"rewardType"`
	Value        float64          `json:"value"`
	Conditions   RewardConditions `gorm:"embedded;embeddedPrefix:condition_" json:"conditions"`
	IsActive     bool             `json:"isActive"`
	UsageCount   int              `json:"usageCount"`
}

type RewardRedemption struct {
	DTO
	RestaurantID uint    `gorm:"index" json:"restaurantId"`
	RewardID     uint    `gorm:"index" json:"rewardId"`
	CustomerID   uint    `gorm:"index" json:"customerId"`
	PointsSpent  int     `json:"pointsSpent"`
	OrderTotal   float64 `json:"orderTotal"`
}

type UpdateLoyaltyProgramInput struct {
	Name           *string         `json:"name" validate:"omitempty,max=120"`
	Description    *string         `json:"description" validate:"omitempty,max=1000"`
	IsActive       *bool           `json:"isActive"`
	PointsSettings *PointsSettings `json:"pointsSettings"`
	Tiers          []LoyaltyTier   `json:"tiers" validate:"omitempty,dive"`
	Campaigns      []Campaign      `json:"campaigns" validate:"omitempty,dive"`
}

type RewardConditionsInput struct {
	MinimumOrder       float64    `json:"minimumOrder" validate:"gte=0"`
	MaxUsesPerCustomer int        `json:"maxUsesPerCustomer" validate:"gte=0"`
	ValidUntil         *time.Time `json:"validUntil"`
	ValidDays          []string   `json:"validDays" validate:"omitempty,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
}

type CreateRewardInput struct {
	Name        string                `json:"name" validate:"required,max=120"`
	Description string                `json:"description" validate:"max=1000"`
	PointsCost  int                   `json:"pointsCost" validate:"required,min=1"`
	RewardType  string                `json:"rewardType" validate:"required,oneof=discount freeItem cashback custom"`
	Value       float64               `json:"value" validate:"gte=0"`
	Conditions  RewardConditionsInput `json:"conditions"`
	IsActive    *bool                 `json:"isActive"`
}

type RedeemRewardInput struct {
	CustomerID uint    `json:"customerId" validate:"required"`
	OrderTotal float64 `json:"orderTotal" validate:"gte=0"`
}

type CustomerTier struct {
	CustomerID    uint         `json:"customerId"`
	LoyaltyPoints int          `json:"loyaltyPoints"`
	Tier          *LoyaltyTier `json:"tier"`
	NextTier      *LoyaltyTier `json:"nextTier"`
	PointsToNext  int          `json:"pointsToNext"`
}
