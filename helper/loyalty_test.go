package helper

import (
	"testing"

	"restaurant_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateTier(t *testing.T) {
	tiers := []model.LoyaltyTier{
		{Name: "Gold", MinimumPoints: 1500},
		{Name: "Bronze", MinimumPoints: 0},
		{Name: "Silver", MinimumPoints: 500},
	}

	current, next := EvaluateTier(tiers, 499)
	require.NotNil(t, current)
	assert.Equal(t, "Bronze", current.Name)
	require.NotNil(t, next)
	assert.Equal(t, "Silver", next.Name)

	current, next = EvaluateTier(tiers, 1500)
	assert.Equal(t, "Gold", current.Name)
	assert.Nil(t, next)

	current, _ = EvaluateTier(nil, 10)
	assert.Nil(t, current)
}

func TestRestaurantStartsWithDefaultProgram(t *testing.T) {
	f := newFixture(t)

	program, err := GetLoyaltyProgram(f.db, f.restaurant.ID)
	require.NoError(t, err)
	assert.True(t, program.IsActive)
	require.Len(t, program.Tiers, 4)

	updated, err := UpdateLoyaltyProgram(f.db, f.restaurant.ID, model.UpdateLoyaltyProgramInput{
		Tiers: []model.LoyaltyTier{{Name: "VIP", MinimumPoints: 100}, {Name: "Member", MinimumPoints: 0}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Member", updated.Tiers[0].Name)
	assert.Equal(t, program.ID, updated.ID)
}

func TestCustomerTierProgress(t *testing.T) {
	f := newFixture(t)
	f.placeOrder(t, testNow)
	c := f.customer(t)

	tier, err := GetCustomerTier(f.db, f.restaurant.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 23, tier.LoyaltyPoints)
	assert.Equal(t, "Bronze", tier.Tier.Name)
	assert.Equal(t, "Silver", tier.NextTier.Name)
	assert.Equal(t, 477, tier.PointsToNext)
}

func TestRedeemRewardLimits(t *testing.T) {
	f := newFixture(t)
	f.placeOrder(t, testNow)
	c := f.customer(t)

	reward, err := CreateReward(f.db, f.restaurant.ID, model.CreateRewardInput{
		Name:       "Free drink",
		PointsCost: 10,
		RewardType: "freeItem",
		Conditions: model.RewardConditionsInput{MaxUsesPerCustomer: 2, MinimumOrder: 15},
	})
	require.NoError(t, err)
	redeem := model.RedeemRewardInput{CustomerID: c.ID, OrderTotal: 20}

	_, err = RedeemReward(f.db, f.restaurant.ID, reward.ID, model.RedeemRewardInput{CustomerID: c.ID, OrderTotal: 5}, testNow)
	assert.ErrorIs(t, err, ErrRewardMinimumOrder)

	for i := 0; i < 2; i++ {
		r, err := RedeemReward(f.db, f.restaurant.ID, reward.ID, redeem, testNow)
		require.NoError(t, err)
		assert.Equal(t, 10, r.PointsSpent)
	}
	_, err = RedeemReward(f.db, f.restaurant.ID, reward.ID, redeem, testNow)
	assert.ErrorIs(t, err, ErrRewardLimitReached)

	assert.Equal(t, 3, f.customer(t).LoyaltyPoints)
	rewards, err := ListRewards(f.db, f.restaurant.ID, true)
	require.NoError(t, err)
	require.Len(t, rewards, 1)
	assert.Equal(t, 2, rewards[0].UsageCount)
}

func TestRedeemRewardNeedsPoints(t *testing.T) {
	f := newFixture(t)
	f.placeOrder(t, testNow)
	c := f.customer(t)

	reward, err := CreateReward(f.db, f.restaurant.ID, model.CreateRewardInput{Name: "Big discount", PointsCost: 100, RewardType: "discount", Value: 10})
	require.NoError(t, err)

	_, err = RedeemReward(f.db, f.restaurant.ID, reward.ID, model.RedeemRewardInput{CustomerID: c.ID}, testNow)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Equal(t, 23, f.customer(t).LoyaltyPoints)

	inactive := false
	_, err = UpdateReward(f.db, f.restaurant.ID, reward.ID, model.CreateRewardInput{Name: "Big discount", PointsCost: 1, RewardType: "discount", IsActive: &inactive})
	require.NoError(t, err)
	_, err = RedeemReward(f.db, f.restaurant.ID, reward.ID, model.RedeemRewardInput{CustomerID: c.ID}, testNow)
	assert.ErrorIs(t, err, ErrRewardUnavailable)

	other := f.otherRestaurant(t)
	_, err = RedeemReward(f.db, other.ID, reward.ID, model.RedeemRewardInput{CustomerID: c.ID}, testNow)
	assert.ErrorIs(t, err, ErrRewardNotFound)
}
