package helper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/logger"
	"restaurant_manager/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SiteInput is what a site builder needs to publish a storefront.
type SiteInput struct {
	Restaurant model.Restaurant
	Menu       []model.MenuItem
	Categories []string
}

// SiteBuilder publishes a restaurant storefront and returns its public URL.
type SiteBuilder interface {
	Build(ctx context.Context, in SiteInput) (string, error)
}

// HostedSiteBuilder serves storefronts from the public API, so publishing only needs a
// snapshot check and the URL.
type HostedSiteBuilder struct{}

func (HostedSiteBuilder) Build(ctx context.Context, in SiteInput) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if in.Restaurant.Slug == "" {
		return "", errors.New("restaurant has no slug")
	}
	if len(in.Menu) == 0 {
		return "", errors.New("menu is empty")
	}
	return StorefrontURL(in.Restaurant.Slug), nil
}

const BuildTimeout = 5 * time.Minute

// Deployer runs at most one build per slug at a time.
type Deployer struct {
	DB      *gorm.DB
	Builder SiteBuilder
	Timeout time.Duration

	inFlight sync.Map
}

func NewDeployer(db *gorm.DB, builder SiteBuilder) *Deployer {
	return &Deployer{DB: db, Builder: builder, Timeout: BuildTimeout}
}

// Deploy records a deployment and builds the storefront synchronously.
// A second call for a slug that is still building fails with ErrDeploymentInProgress.
func (d *Deployer) Deploy(ctx context.Context, restaurant *model.Restaurant, now func() time.Time) (*model.Deployment, error) {
	if _, busy := d.inFlight.LoadOrStore(restaurant.Slug, struct{}{}); busy {
		return nil, ErrDeploymentInProgress
	}
	defer d.inFlight.Delete(restaurant.Slug)

	log := logger.WithRestaurant(restaurant.ID)
	dep := model.Deployment{
		DeploymentID: uuid.NewString(),
		RestaurantID: restaurant.ID,
		Slug:         restaurant.Slug,
		Status:       constants.DEPLOYMENT_BUILDING,
		StartedAt:    now(),
	}
	if err := d.DB.Create(&dep).Error; err != nil {
		return nil, fmt.Errorf("record deployment: %w", err)
	}

	menu, categories, err := d.loadMenu(restaurant.ID)
	if err != nil {
		finished := now()
		dep.FinishedAt = &finished
		dep.Status = constants.DEPLOYMENT_FAILED
		dep.FailureReason = err.Error()
		if saveErr := d.DB.Save(&dep).Error; saveErr != nil {
			log.Error().Err(saveErr).Str("deployment", dep.DeploymentID).Msg("mark deployment failed")
		}
		return nil, err
	}

	timeout := d.Timeout
	if timeout <= 0 {
		timeout = BuildTimeout
	}
	buildCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url, buildErr := d.Builder.Build(buildCtx, SiteInput{Restaurant: *restaurant, Menu: menu, Categories: categories})
	finished := now()
	dep.FinishedAt = &finished
	if buildErr != nil {
		dep.Status = constants.DEPLOYMENT_FAILED
		dep.FailureReason = buildErr.Error()
		log.Warn().Err(buildErr).Str("deployment", dep.DeploymentID).Msg("storefront build failed")
	} else {
		dep.Status = constants.DEPLOYMENT_DEPLOYED
		dep.URL = url
		if err := MarkPublished(d.DB, restaurant, url, finished); err != nil {
			return nil, err
		}
		log.Info().Str("deployment", dep.DeploymentID).Str("url", url).Msg("storefront published")
	}
	if err := d.DB.Save(&dep).Error; err != nil {
		return nil, err
	}
	return &dep, nil
}

func (d *Deployer) loadMenu(restaurantID uint) ([]model.MenuItem, []string, error) {
	menu, err := ListMenuItems(d.DB, restaurantID, model.MenuFilter{Available: "true"})
	if err != nil {
		return nil, nil, fmt.Errorf("load menu: %w", err)
	}
	categories, err := MenuCategories(d.DB, restaurantID)
	if err != nil {
		return nil, nil, fmt.Errorf("load categories: %w", err)
	}
	return menu, categories, nil
}

func GetDeployment(db *gorm.DB, restaurantID uint, deploymentID string) (*model.Deployment, error) {
	var dep model.Deployment
	err := db.Where("deployment_id = ? AND restaurant_id = ?", deploymentID, restaurantID).First(&dep).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeploymentNotFound
		}
		return nil, err
	}
	return &dep, nil
}

func ListDeployments(db *gorm.DB, restaurantID uint) ([]model.Deployment, error) {
	var deps []model.Deployment
	err := db.Where("restaurant_id = ?", restaurantID).Order("started_at DESC").Limit(20).Find(&deps).Error
	return deps, err
}
