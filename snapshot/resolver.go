// Package snapshot decides which business and client identity attach to an
// invoice draft at render or save time. All lookups are scoped to the
// requesting user; a foreign or bogus id resolves as not-found.
package snapshot

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	"invoicer-backend/draft"
	"invoicer-backend/models"
)

// store is the persistence surface the resolver needs. Lookups return
// (nil, nil) when nothing matches, except clientByID which fails closed with
// gorm.ErrRecordNotFound.
type store interface {
	profileByID(userID string, id uint64) (*models.BusinessProfile, error)
	profileByName(userID, name string) (*models.BusinessProfile, error)
	createProfile(p *models.BusinessProfile) error
	saveProfile(p *models.BusinessProfile) error
	latestProfile(userID string) (*models.BusinessProfile, error)
	clientByID(userID string, id uint64) (*models.Client, error)
	createClient(cl *models.Client) error
}

type Resolver struct {
	st store
}

func New(db *gorm.DB) *Resolver {
	return &Resolver{st: &gormStore{db: db}}
}

// ResolveBusiness produces the single business snapshot to render, by
// precedence:
//  1. a posted photo always wins for the logo field
//  2. a resolvable posted profile id supplies fields not overridden by posted text
//  3. a posted name resolves (and, when persist is set, upserts) a profile
//  4. posted fields alone; when the invoice already carries a saved snapshot,
//     it supplies the fields the caller did not post
//  5. the invoice's previously saved snapshot
//  6. the user's most recently created profile, else none
//
// persist=false is a pure read used by previews; persist=true additionally
// performs the implicit profile upsert used by the save paths. A stored
// profile's logo is never overwritten from an invoice-level upload.
func (r *Resolver) ResolveBusiness(userID string, posted *draft.BusinessSnapshot, inv *models.Invoice, persist bool) (*draft.BusinessSnapshot, error) {
	if posted != nil && posted.ProfileID != "" {
		profile, err := r.lookupProfileByID(userID, posted.ProfileID)
		if err != nil {
			return nil, err
		}
		if profile != nil {
			if persist {
				if err := r.updateProfile(profile, posted); err != nil {
					return nil, err
				}
			}
			return mergeBusiness(posted, profile), nil
		}
		// id not resolvable for this user: fail closed and fall through to
		// name-based resolution so nothing foreign leaks into the render
	}

	if posted != nil && posted.Name != "" {
		profile, err := r.st.profileByName(userID, posted.Name)
		if err != nil {
			return nil, err
		}
		if profile == nil && persist {
			profile = &models.BusinessProfile{
				UserId:       userID,
				BusinessName: posted.Name,
				Email:        posted.Email,
				Phone:        posted.Phone,
				Address:      posted.Address,
				City:         posted.City,
				State:        posted.State,
				ZipCode:      posted.ZipCode,
				Country:      posted.Country,
			}
			if err := r.st.createProfile(profile); err != nil {
				return nil, err
			}
		}
		if profile != nil {
			if persist {
				if err := r.updateProfile(profile, posted); err != nil {
					return nil, err
				}
			}
			return mergeBusiness(posted, profile), nil
		}
		return standaloneSnapshot(posted), nil
	}

	if posted != nil && !posted.Empty() {
		// No stored identity was referenced. If the invoice already carries a
		// saved snapshot it supplies everything the caller did not post; a
		// photo-only post must not wipe the saved business identity.
		if inv != nil {
			if saved := inv.SavedSnapshot(); saved != nil {
				return mergeSnapshots(posted, saved), nil
			}
		}
		return standaloneSnapshot(posted), nil
	}

	if inv != nil {
		if saved := inv.SavedSnapshot(); saved != nil {
			return saved, nil
		}
	}

	latest, err := r.st.latestProfile(userID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}
	return snapshotFromProfile(latest), nil
}

// ResolveClient attaches a client identity to the draft. An explicit id must
// resolve within the user's own clients or the call fails closed with
// gorm.ErrRecordNotFound. Otherwise a freshly typed name either creates a
// stored client (persist) or stays an ad-hoc identity used only for rendering.
func (r *Resolver) ResolveClient(userID string, ref *draft.ClientRef, persist bool) (*draft.ClientRef, *models.Client, error) {
	if ref == nil {
		return nil, nil, nil
	}

	if ref.ID != "" {
		id, err := strconv.ParseUint(ref.ID, 10, 64)
		if err != nil {
			return nil, nil, gorm.ErrRecordNotFound
		}
		client, err := r.st.clientByID(userID, id)
		if err != nil {
			return nil, nil, err
		}
		resolved := &draft.ClientRef{
			ID:      ref.ID,
			Name:    client.Name,
			Email:   firstNonEmpty(ref.Email, client.Email),
			Phone:   firstNonEmpty(ref.Phone, client.Phone),
			Address: firstNonEmpty(ref.Address, client.Address),
		}
		return resolved, client, nil
	}

	if ref.Name != "" {
		if !persist {
			out := *ref
			return &out, nil, nil
		}
		client := models.Client{
			UserId:  userID,
			Name:    ref.Name,
			Email:   ref.Email,
			Phone:   ref.Phone,
			Address: ref.Address,
		}
		if err := r.st.createClient(&client); err != nil {
			return nil, nil, err
		}
		resolved := *ref
		resolved.ID = strconv.FormatUint(uint64(client.Id), 10)
		return &resolved, &client, nil
	}

	return nil, nil, nil
}

func (r *Resolver) lookupProfileByID(userID, rawID string) (*models.BusinessProfile, error) {
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		return nil, nil
	}
	return r.st.profileByID(userID, id)
}

func (r *Resolver) updateProfile(profile *models.BusinessProfile, posted *draft.BusinessSnapshot) error {
	if !applyPostedChanges(profile, posted) {
		return nil
	}
	return r.st.saveProfile(profile)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// gormStore is the production store, scoping every lookup by user_id.
type gormStore struct {
	db *gorm.DB
}

func (s *gormStore) profileByID(userID string, id uint64) (*models.BusinessProfile, error) {
	var profile models.BusinessProfile
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (s *gormStore) profileByName(userID, name string) (*models.BusinessProfile, error) {
	var profile models.BusinessProfile
	err := s.db.Where("user_id = ? AND business_name = ?", userID, name).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (s *gormStore) createProfile(p *models.BusinessProfile) error {
	return s.db.Create(p).Error
}

func (s *gormStore) saveProfile(p *models.BusinessProfile) error {
	return s.db.Save(p).Error
}

func (s *gormStore) latestProfile(userID string) (*models.BusinessProfile, error) {
	var profile models.BusinessProfile
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (s *gormStore) clientByID(userID string, id uint64) (*models.Client, error) {
	var client models.Client
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *gormStore) createClient(cl *models.Client) error {
	return s.db.Create(cl).Error
}
