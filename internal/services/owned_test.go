package services

import (
	"context"
	"testing"

	"github.com/MarinusJvRe/TrophyVault/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validWeapon(name string) WeaponInput {
	return WeaponInput{Name: strPtr(name), Type: strPtr("Rifle"), Caliber: strPtr(".375 H&H")}
}

func validTrophy(species string) TrophyInput {
	return TrophyInput{
		Species:  strPtr(species),
		Name:     strPtr("Old " + species),
		Date:     strPtr("2024-06-12"),
		Location: strPtr("Eastern Cape"),
		Method:   strPtr("Bow"),
	}
}

func TestWeaponService_Ownership(t *testing.T) {
	ctx := context.Background()
	db := setupServiceDB(t)
	svc := NewWeaponService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	weapon, err := svc.Create(ctx, alice.ID, validWeapon("Sako 85"))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, weapon.UserID)
	assert.NotEqual(t, uuid.Nil, weapon.ID)

	t.Run("owner can read it back", func(t *testing.T) {
		got, err := svc.Get(ctx, alice.ID, weapon.ID)
		require.NoError(t, err)
		assert.Equal(t, "Sako 85", got.Name)
		require.NotNil(t, got.Caliber)
		assert.Equal(t, ".375 H&H", *got.Caliber)
	})

	t.Run("other users see not found", func(t *testing.T) {
		_, err := svc.Get(ctx, bob.ID, weapon.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = svc.Update(ctx, bob.ID, weapon.ID, WeaponInput{Name: strPtr("stolen")})
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, bob.ID, weapon.ID), ErrNotFound)

		list, err := svc.List(ctx, bob.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		updated, err := svc.Update(ctx, alice.ID, weapon.ID, WeaponInput{Optic: strPtr("Swarovski Z8i")})
		require.NoError(t, err)
		assert.Equal(t, "Sako 85", updated.Name)
		require.NotNil(t, updated.Optic)
		assert.Equal(t, "Swarovski Z8i", *updated.Optic)

		cleared, err := svc.Update(ctx, alice.ID, weapon.ID, WeaponInput{Caliber: strPtr("")})
		require.NoError(t, err)
		assert.Nil(t, cleared.Caliber)
		assert.NotNil(t, cleared.Optic)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, alice.ID, weapon.ID, WeaponInput{Type: strPtr("Crossbow")})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "type")

		_, err = svc.Create(ctx, alice.ID, WeaponInput{Name: strPtr("  ")})
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "name")
		assert.Contains(t, verr.Fields, "type")
	})
}

func TestTrophyService(t *testing.T) {
	ctx := context.Background()
	db := setupServiceDB(t)
	trophies := NewTrophyService(db)
	weapons := NewWeaponService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	bow, err := weapons.Create(ctx, alice.ID, WeaponInput{Name: strPtr("Hoyt"), Type: strPtr("Bow")})
	require.NoError(t, err)
	bobsRifle, err := weapons.Create(ctx, bob.ID, validWeapon("Blaser"))
	require.NoError(t, err)

	t.Run("weapon link must be one of the caller's weapons", func(t *testing.T) {
		in := validTrophy("Kudu")
		in.WeaponID = strPtr(bobsRifle.ID.String())
		_, err := trophies.Create(ctx, alice.ID, in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "weaponId")
	})

	in := validTrophy("Kudu")
	in.WeaponID = strPtr(bow.ID.String())
	in.Featured = boolPtr(true)
	kudu, err := trophies.Create(ctx, alice.ID, in)
	require.NoError(t, err)
	require.NotNil(t, kudu.WeaponID)
	assert.Equal(t, bow.ID, *kudu.WeaponID)

	_, err = trophies.Create(ctx, alice.ID, validTrophy("Impala"))
	require.NoError(t, err)

	t.Run("filters narrow the list", func(t *testing.T) {
		all, err := trophies.List(ctx, alice.ID, TrophyFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)

		kudus, err := trophies.List(ctx, alice.ID, TrophyFilter{Species: "Kudu"})
		require.NoError(t, err)
		require.Len(t, kudus, 1)
		assert.Equal(t, kudu.ID, kudus[0].ID)

		featured, err := trophies.List(ctx, alice.ID, TrophyFilter{Featured: boolPtr(true)})
		require.NoError(t, err)
		assert.Len(t, featured, 1)

		notFeatured, err := trophies.List(ctx, alice.ID, TrophyFilter{Featured: boolPtr(false)})
		require.NoError(t, err)
		assert.Len(t, notFeatured, 1)
	})

	t.Run("deleting the weapon keeps the trophy", func(t *testing.T) {
		require.NoError(t, weapons.Delete(ctx, alice.ID, bow.ID))

		got, err := trophies.Get(ctx, alice.ID, kudu.ID)
		require.NoError(t, err)
		assert.Nil(t, got.WeaponID)
	})

	t.Run("clearing the weapon link with an empty string", func(t *testing.T) {
		rifle, err := weapons.Create(ctx, alice.ID, validWeapon("Mauser"))
		require.NoError(t, err)

		linked, err := trophies.Update(ctx, alice.ID, kudu.ID, TrophyInput{WeaponID: strPtr(rifle.ID.String())})
		require.NoError(t, err)
		require.NotNil(t, linked.WeaponID)

		unlinked, err := trophies.Update(ctx, alice.ID, kudu.ID, TrophyInput{WeaponID: strPtr("")})
		require.NoError(t, err)
		assert.Nil(t, unlinked.WeaponID)
		assert.Equal(t, "Kudu", unlinked.Species)
	})

	t.Run("required fields cannot be blanked", func(t *testing.T) {
		_, err := trophies.Update(ctx, alice.ID, kudu.ID, TrophyInput{Location: strPtr(" ")})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "location")
	})

	t.Run("bob cannot touch alice's trophies", func(t *testing.T) {
		_, err := trophies.Get(ctx, bob.ID, kudu.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, trophies.Delete(ctx, bob.ID, kudu.ID), ErrNotFound)

		var count int64
		require.NoError(t, db.Model(&models.Trophy{}).Where("id = ?", kudu.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func boolPtr(b bool) *bool { return &b }
