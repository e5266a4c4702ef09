package helper

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// gateBuilder blocks until released so a second deploy can race the first.
type gateBuilder struct {
	started chan struct{}
	release chan struct{}
}

func (g gateBuilder) Build(ctx context.Context, in SiteInput) (string, error) {
	close(g.started)
	<-g.release
	return HostedSiteBuilder{}.Build(ctx, in)
}

func clock() time.Time { return testNow }

func TestDeployPublishesStorefront(t *testing.T) {
	f := newFixture(t)
	prev := PublicAppURL
	PublicAppURL = "https://order.example.com"
	t.Cleanup(func() { PublicAppURL = prev })

	d := NewDeployer(f.db, HostedSiteBuilder{})
	dep, err := d.Deploy(context.Background(), f.restaurant, clock)
	require.NoError(t, err)
	assert.Equal(t, constants.DEPLOYMENT_DEPLOYED, dep.Status)
	assert.Equal(t, "https://order.example.com/r/"+f.restaurant.Slug, dep.URL)
	require.NotNil(t, dep.FinishedAt)

	restaurant, err := FindPublicRestaurant(f.db, f.restaurant.Slug)
	require.NoError(t, err)
	assert.True(t, restaurant.Website.IsPublished)
	assert.Equal(t, dep.URL, restaurant.Website.URL)

	found, err := GetDeployment(f.db, f.restaurant.ID, dep.DeploymentID)
	require.NoError(t, err)
	assert.Equal(t, dep.ID, found.ID)
}

func TestDeployRecordsBuildFailure(t *testing.T) {
	f := newFixture(t)
	empty := f.otherRestaurant(t)

	dep, err := NewDeployer(f.db, HostedSiteBuilder{}).Deploy(context.Background(), empty, clock)
	require.NoError(t, err)
	assert.Equal(t, constants.DEPLOYMENT_FAILED, dep.Status)
	assert.Equal(t, "menu is empty", dep.FailureReason)

	_, err = GetDeployment(f.db, f.restaurant.ID, dep.DeploymentID)
	assert.ErrorIs(t, err, ErrDeploymentNotFound)
}

func TestDeployMarksFailedWhenMenuCannotLoad(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Callback().Query().Before("gorm:query").Register("menu_offline", func(tx *gorm.DB) {
		if tx.Statement.Table == "menu_items" {
			_ = tx.AddError(errors.New("menu offline"))
		}
	}))

	_, err := NewDeployer(f.db, HostedSiteBuilder{}).Deploy(context.Background(), f.restaurant, clock)
	require.Error(t, err)

	var deps []model.Deployment
	require.NoError(t, f.db.Where("restaurant_id = ?", f.restaurant.ID).Find(&deps).Error)
	require.Len(t, deps, 1)
	assert.Equal(t, constants.DEPLOYMENT_FAILED, deps[0].Status)
	assert.Contains(t, deps[0].FailureReason, "menu offline")
	assert.NotNil(t, deps[0].FinishedAt)
}

func TestDeployOneBuildPerSlug(t *testing.T) {
	f := newFixture(t)
	gate := gateBuilder{started: make(chan struct{}), release: make(chan struct{})}
	d := NewDeployer(f.db, gate)

	done := make(chan error, 1)
	go func() {
		_, err := d.Deploy(context.Background(), f.restaurant, clock)
		done <- err
	}()
	<-gate.started

	_, err := d.Deploy(context.Background(), f.restaurant, clock)
	assert.ErrorIs(t, err, ErrDeploymentInProgress)

	close(gate.release)
	require.NoError(t, <-done)

	deps, err := ListDeployments(f.db, f.restaurant.ID)
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, constants.DEPLOYMENT_DEPLOYED, deps[0].Status)
}
