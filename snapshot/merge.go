package snapshot

import (
	"strconv"

	"invoicer-backend/draft"
	"invoicer-backend/models"
)

// mergeBusiness combines an explicitly posted snapshot with a stored profile.
// Posted textual fields win; the profile supplies anything left blank. The
// posted photo always wins for the logo; otherwise the stored logo is used.
func mergeBusiness(posted *draft.BusinessSnapshot, profile *models.BusinessProfile) *draft.BusinessSnapshot {
	snap := snapshotFromProfile(profile)
	if posted == nil {
		return snap
	}
	if posted.Name != "" {
		snap.Name = posted.Name
	}
	if posted.Email != "" {
		snap.Email = posted.Email
	}
	if posted.Phone != "" {
		snap.Phone = posted.Phone
	}
	if posted.Address != "" {
		snap.Address = posted.Address
	}
	if posted.City != "" {
		snap.City = posted.City
	}
	if posted.State != "" {
		snap.State = posted.State
	}
	if posted.ZipCode != "" {
		snap.ZipCode = posted.ZipCode
	}
	if posted.Country != "" {
		snap.Country = posted.Country
	}
	if posted.PhotoDataURL != "" {
		snap.LogoURL = posted.PhotoDataURL
	}
	return snap
}

func snapshotFromProfile(profile *models.BusinessProfile) *draft.BusinessSnapshot {
	return &draft.BusinessSnapshot{
		ProfileID: strconv.FormatUint(uint64(profile.Id), 10),
		Name:      profile.BusinessName,
		Email:     profile.Email,
		Phone:     profile.Phone,
		Address:   profile.Address,
		City:      profile.City,
		State:     profile.State,
		ZipCode:   profile.ZipCode,
		Country:   profile.Country,
		LogoURL:   profile.LogoURL,
	}
}

// mergeSnapshots combines posted fields with an invoice's saved snapshot.
// Posted textual fields win; the saved snapshot supplies anything left blank.
// The posted photo wins for the logo; otherwise the saved logo survives.
func mergeSnapshots(posted, saved *draft.BusinessSnapshot) *draft.BusinessSnapshot {
	snap := *saved
	if posted == nil {
		return &snap
	}
	if posted.Name != "" {
		snap.Name = posted.Name
	}
	if posted.Email != "" {
		snap.Email = posted.Email
	}
	if posted.Phone != "" {
		snap.Phone = posted.Phone
	}
	if posted.Address != "" {
		snap.Address = posted.Address
	}
	if posted.City != "" {
		snap.City = posted.City
	}
	if posted.State != "" {
		snap.State = posted.State
	}
	if posted.ZipCode != "" {
		snap.ZipCode = posted.ZipCode
	}
	if posted.Country != "" {
		snap.Country = posted.Country
	}
	if posted.PhotoDataURL != "" {
		snap.PhotoDataURL = posted.PhotoDataURL
		snap.LogoURL = posted.PhotoDataURL
	}
	return &snap
}

// standaloneSnapshot renders posted fields with no stored profile behind them.
func standaloneSnapshot(posted *draft.BusinessSnapshot) *draft.BusinessSnapshot {
	snap := *posted
	snap.ProfileID = ""
	if snap.PhotoDataURL != "" {
		snap.LogoURL = snap.PhotoDataURL
	}
	return &snap
}

// applyPostedChanges copies non-empty posted textual fields onto the profile
// and reports whether anything changed. The logo is deliberately untouched:
// profile logos change only through the profile edit path.
func applyPostedChanges(profile *models.BusinessProfile, posted *draft.BusinessSnapshot) bool {
	changed := false
	set := func(dst *string, v string) {
		if v != "" && *dst != v {
			*dst = v
			changed = true
		}
	}
	set(&profile.BusinessName, posted.Name)
	set(&profile.Email, posted.Email)
	set(&profile.Phone, posted.Phone)
	set(&profile.Address, posted.Address)
	set(&profile.City, posted.City)
	set(&profile.State, posted.State)
	set(&profile.ZipCode, posted.ZipCode)
	set(&profile.Country, posted.Country)
	return changed
}
