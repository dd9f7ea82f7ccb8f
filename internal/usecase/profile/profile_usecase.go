package profile

import (
	"context"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/domain"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{profileRepo: profileRepo}
}

// CreateProfileRequest creates a new matchable profile.
type CreateProfileRequest struct {
	FirstName    string  `json:"first_name" binding:"required,min=1,max=100"`
	LastName     string  `json:"last_name" binding:"omitempty,max=100"`
	Age          *int    `json:"age" binding:"omitempty,min=18,max=120"`
	Bio          *string `json:"bio" binding:"omitempty,max=1000"`
	Interests    *string `json:"interests" binding:"omitempty,max=500"`
	Cleanliness  *string `json:"cleanliness" binding:"omitempty,lifestyle"`
	Noise        *string `json:"noise" binding:"omitempty,lifestyle"`
	Schedule     *string `json:"schedule" binding:"omitempty,max=100"`
	Guests       *string `json:"guests" binding:"omitempty,lifestyle"`
	Smoking      *string `json:"smoking" binding:"omitempty,max=50"`
	HasApartment bool    `json:"has_apartment"`
	Zone         *string `json:"zone" binding:"omitempty,max=100"`
}

// UpdateProfileRequest updates a profile; nil fields are left untouched.
type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName     *string `json:"last_name" binding:"omitempty,max=100"`
	Age          *int    `json:"age" binding:"omitempty,min=18,max=120"`
	Bio          *string `json:"bio" binding:"omitempty,max=1000"`
	Interests    *string `json:"interests" binding:"omitempty,max=500"`
	Cleanliness  *string `json:"cleanliness" binding:"omitempty,lifestyle"`
	Noise        *string `json:"noise" binding:"omitempty,lifestyle"`
	Schedule     *string `json:"schedule" binding:"omitempty,max=100"`
	Guests       *string `json:"guests" binding:"omitempty,lifestyle"`
	Smoking      *string `json:"smoking" binding:"omitempty,max=50"`
	HasApartment *bool   `json:"has_apartment"`
	Zone         *string `json:"zone" binding:"omitempty,max=100"`
}

func (uc *ProfileUseCase) CreateProfile(ctx context.Context, req *CreateProfileRequest) (*domain.Profile, error) {
	profile := &domain.Profile{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Age:          req.Age,
		Bio:          req.Bio,
		Interests:    req.Interests,
		Cleanliness:  req.Cleanliness,
		Noise:        req.Noise,
		Schedule:     req.Schedule,
		Guests:       req.Guests,
		Smoking:      req.Smoking,
		HasApartment: req.HasApartment,
		Zone:         req.Zone,
		IsActive:     true,
	}
	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (uc *ProfileUseCase) GetProfile(ctx context.Context, id int) (*domain.Profile, error) {
	return uc.profileRepo.GetByID(ctx, id)
}

func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, id int, req *UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.Age != nil {
		profile.Age = req.Age
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.Interests != nil {
		profile.Interests = req.Interests
	}
	if req.Cleanliness != nil {
		profile.Cleanliness = req.Cleanliness
	}
	if req.Noise != nil {
		profile.Noise = req.Noise
	}
	if req.Schedule != nil {
		profile.Schedule = req.Schedule
	}
	if req.Guests != nil {
		profile.Guests = req.Guests
	}
	if req.Smoking != nil {
		profile.Smoking = req.Smoking
	}
	if req.HasApartment != nil {
		profile.HasApartment = *req.HasApartment
	}
	if req.Zone != nil {
		profile.Zone = req.Zone
	}

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SetActive flips feed visibility. Deactivated profiles keep their matches but
// stop appearing as candidates.
func (uc *ProfileUseCase) SetActive(ctx context.Context, id int, isActive bool) error {
	return uc.profileRepo.SetActive(ctx, id, isActive)
}
