package recipes

import (
	"brewstock/domain"
	"brewstock/entities"
	"brewstock/internal/utils/storage"
	"brewstock/pkg/units"
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		ResolveCurrent(ctx context.Context, sellableID string) (domain.RecipeResponse, error)
		CreateVersion(ctx context.Context, req domain.CreateRecipeVersionRequest) (domain.CreateRecipeVersionResponse, error)
		GetHistory(ctx context.Context, sellableID string, page, limit int) ([]domain.RecipeResponse, int64, error)
		GetSellables(ctx context.Context, kind string, page, limit int) ([]domain.SellableResponse, int64, error)
		UploadSellableImage(ctx context.Context, sellableID string, file *multipart.FileHeader) (string, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		s3               storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{recipeRepository: recipeRepository, s3: s3}
}

// ResolveCurrent returns the lines of the single current recipe version for a
// sellable. Quantities come back in authoring units; conversion into the
// matched inventory item's native unit happens downstream.
func (s *recipeService) ResolveCurrent(ctx context.Context, sellableID string) (domain.RecipeResponse, error) {
	if _, err := uuid.Parse(sellableID); err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	version, err := s.recipeRepository.GetCurrentVersion(ctx, sellableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	return toRecipeResponse(version), nil
}

// CreateVersion records a recipe version for a sellable. Without force, a
// sellable that already has a current version is left untouched and the call
// reports domain.ErrRecipeVersionConflict. With force, the prior current
// version is superseded (effective_to stamped) and version max+1 is inserted
// in the same transaction.
func (s *recipeService) CreateVersion(ctx context.Context, req domain.CreateRecipeVersionRequest) (domain.CreateRecipeVersionResponse, error) {
	if len(req.Lines) == 0 {
		return domain.CreateRecipeVersionResponse{}, domain.ErrEmptyRecipe
	}
	for _, line := range req.Lines {
		if line.Amount < 0 {
			return domain.CreateRecipeVersionResponse{}, domain.ErrInvalidLineQuantity
		}
		if line.LossPercent < 0 || line.LossPercent > 100 {
			return domain.CreateRecipeVersionResponse{}, domain.ErrInvalidLossPercent
		}
		if !units.IsSupported(line.Unit) {
			return domain.CreateRecipeVersionResponse{}, domain.ErrInvalidUnit
		}
	}

	sellable, err := s.recipeRepository.GetSellableByID(ctx, req.SellableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CreateRecipeVersionResponse{}, domain.ErrSellableNotFound
		}
		return domain.CreateRecipeVersionResponse{}, err
	}

	current, err := s.recipeRepository.GetCurrentVersion(ctx, req.SellableID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.CreateRecipeVersionResponse{}, err
	}
	hasCurrent := err == nil

	if hasCurrent && !req.Force {
		return domain.CreateRecipeVersionResponse{
			SellableID: sellable.ID.String(),
			Version:    current.Version,
			Created:    false,
		}, domain.ErrRecipeVersionConflict
	}

	maxVersion, err := s.recipeRepository.GetMaxVersion(ctx, req.SellableID)
	if err != nil {
		return domain.CreateRecipeVersionResponse{}, err
	}

	version := entities.RecipeVersion{
		SellableID:    sellable.ID,
		Version:       maxVersion + 1,
		Status:        entities.RecipeStatusCurrent,
		EffectiveFrom: time.Now(),
	}
	for i, spec := range req.Lines {
		line := entities.RecipeLine{
			Position:    i,
			Label:       spec.Label,
			Amount:      spec.Amount,
			Unit:        spec.Unit,
			LossPercent: spec.LossPercent,
		}
		if err := line.SetCandidates(spec.Candidates); err != nil {
			return domain.CreateRecipeVersionResponse{}, err
		}
		version.Lines = append(version.Lines, line)
	}

	if hasCurrent {
		err = s.recipeRepository.SupersedeAndCreate(ctx, req.SellableID, &version)
	} else {
		err = s.recipeRepository.CreateVersion(ctx, &version)
	}
	if err != nil {
		return domain.CreateRecipeVersionResponse{}, err
	}

	return domain.CreateRecipeVersionResponse{
		SellableID: sellable.ID.String(),
		Version:    version.Version,
		Created:    true,
	}, nil
}

func (s *recipeService) GetHistory(ctx context.Context, sellableID string, page, limit int) ([]domain.RecipeResponse, int64, error) {
	if _, err := uuid.Parse(sellableID); err != nil {
		return nil, 0, domain.ErrParseUUID
	}

	versions, count, err := s.recipeRepository.GetVersions(ctx, sellableID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.RecipeResponse, 0, len(versions))
	for _, version := range versions {
		result = append(result, toRecipeResponse(version))
	}
	return result, count, nil
}

func (s *recipeService) GetSellables(ctx context.Context, kind string, page, limit int) ([]domain.SellableResponse, int64, error) {
	sellables, count, err := s.recipeRepository.GetSellables(ctx, kind, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.SellableResponse, 0, len(sellables))
	for _, sellable := range sellables {
		result = append(result, domain.SellableResponse{
			ID:         sellable.ID.String(),
			ExternalID: sellable.ExternalID,
			Name:       sellable.Name,
			Kind:       sellable.Kind,
			Category:   sellable.Category,
			Price:      sellable.Price,
			ImageURL:   sellable.ImageURL,
		})
	}
	return result, count, nil
}

// UploadSellableImage stores a menu photo for the sellable and records its
// public URL. An existing image is overwritten in place so the link stays
// stable.
func (s *recipeService) UploadSellableImage(ctx context.Context, sellableID string, file *multipart.FileHeader) (string, error) {
	sellable, err := s.recipeRepository.GetSellableByID(ctx, sellableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrSellableNotFound
		}
		return "", err
	}

	var objectKey string
	if sellable.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(sellable.ImageURL)
		objectKey, err = s.s3.UpdateFile(existingKey, file, storage.AllowImage...)
	} else {
		objectKey, err = s.s3.UploadFile(sellable.ID.String(), file, "sellables", storage.AllowImage...)
	}
	if err != nil {
		return "", err
	}

	sellable.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.recipeRepository.UpdateSellable(ctx, sellable); err != nil {
		return "", err
	}
	return sellable.ImageURL, nil
}

func toRecipeResponse(version *entities.RecipeVersion) domain.RecipeResponse {
	lines := make([]domain.RecipeLineSpec, 0, len(version.Lines))
	for _, line := range version.Lines {
		lines = append(lines, domain.RecipeLineSpec{
			Label:       line.Label,
			Candidates:  line.CandidateList(),
			Amount:      line.Amount,
			Unit:        line.Unit,
			LossPercent: line.LossPercent,
		})
	}
	return domain.RecipeResponse{
		SellableID:    version.SellableID.String(),
		Version:       version.Version,
		Status:        version.Status,
		EffectiveFrom: version.EffectiveFrom,
		EffectiveTo:   version.EffectiveTo,
		Lines:         lines,
	}
}
