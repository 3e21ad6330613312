package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"invoicer-backend/draft"
	"invoicer-backend/models"
)

func TestMergeBusiness(t *testing.T) {
	t.Parallel()

	profile := &models.BusinessProfile{
		Id:           9,
		BusinessName: "Stored Studio",
		Email:        "stored@studio.test",
		Phone:        "555-0100",
		Address:      "1 Stored Way",
		LogoURL:      "/media/logos/stored.png",
	}

	t.Run("posted text overrides stored fields", func(t *testing.T) {
		t.Parallel()
		r := require.New(t)

		snap := mergeBusiness(&draft.BusinessSnapshot{
			Name:  "Renamed Studio",
			Email: "new@studio.test",
		}, profile)

		r.Equal("Renamed Studio", snap.Name)
		r.Equal("new@studio.test", snap.Email)
		r.Equal("555-0100", snap.Phone)
		r.Equal("1 Stored Way", snap.Address)
		r.Equal("9", snap.ProfileID)
	})

	t.Run("stored logo used when no photo posted", func(t *testing.T) {
		t.Parallel()

		snap := mergeBusiness(&draft.BusinessSnapshot{Name: "X"}, profile)
		require.Equal(t, "/media/logos/stored.png", snap.LogoURL)
	})

	t.Run("posted photo wins over stored logo", func(t *testing.T) {
		t.Parallel()

		snap := mergeBusiness(&draft.BusinessSnapshot{
			Name:         "X",
			PhotoDataURL: "data:image/png;base64,AAAA",
		}, profile)
		require.Equal(t, "data:image/png;base64,AAAA", snap.LogoURL)
	})

	t.Run("nil posted yields the stored profile as-is", func(t *testing.T) {
		t.Parallel()

		snap := mergeBusiness(nil, profile)
		require.Equal(t, "Stored Studio", snap.Name)
		require.Equal(t, "/media/logos/stored.png", snap.LogoURL)
	})
}

func TestStandaloneSnapshot(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	snap := standaloneSnapshot(&draft.BusinessSnapshot{
		ProfileID:    "999", // unresolved id must not survive
		Name:         "Ad Hoc",
		PhotoDataURL: "data:image/png;base64,BBBB",
	})

	r.Empty(snap.ProfileID)
	r.Equal("Ad Hoc", snap.Name)
	r.Equal("data:image/png;base64,BBBB", snap.LogoURL)
}

func TestApplyPostedChanges(t *testing.T) {
	t.Parallel()

	t.Run("only provided fields change, logo never does", func(t *testing.T) {
		t.Parallel()
		r := require.New(t)

		profile := models.BusinessProfile{
			BusinessName: "Old",
			Email:        "old@x.test",
			LogoURL:      "/media/keep.png",
		}
		changed := applyPostedChanges(&profile, &draft.BusinessSnapshot{
			Name:         "New",
			PhotoDataURL: "data:image/png;base64,CCCC",
		})

		r.True(changed)
		r.Equal("New", profile.BusinessName)
		r.Equal("old@x.test", profile.Email)
		r.Equal("/media/keep.png", profile.LogoURL)
	})

	t.Run("identical values report no change", func(t *testing.T) {
		t.Parallel()

		profile := models.BusinessProfile{BusinessName: "Same"}
		changed := applyPostedChanges(&profile, &draft.BusinessSnapshot{Name: "Same"})
		require.False(t, changed)
	})
}
