package redis

import (
	"context"
	"testing"
	"time"

	"github.com/PartnerPortal/PartnerPortal-Backend/services/contact"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*RedisService, *miniredis.Miniredis) {
	m := miniredis.RunT(t)
	r := NewRedisServiceWithClient(redis.NewClient(&redis.Options{Addr: m.Addr()}), "portal-test")
	t.Cleanup(func() { _ = r.Close() })
	return r, m
}

func sampleProfile() *contact.Profile {
	return &contact.Profile{
		ID:       uuid.NewString(),
		FullName: "Pat Partner",
		Email:    "partner@partnerportal.dev",
		Company:  &contact.Company{ID: uuid.NewString(), Name: "Contoso"},
	}
}

func TestKeyIsPrefixed(t *testing.T) {
	r := NewRedisServiceWithClient(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "")
	defer r.Close()

	assert.Equal(t, "portal:profile:a@b.c", r.key("profile:a@b.c"))
}

func TestGetProfileMiss(t *testing.T) {
	r, _ := newTestRedis(t)

	got, ok, err := r.GetProfile(context.Background(), "profile:missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestProfileRoundTrip(t *testing.T) {
	r, m := newTestRedis(t)
	ctx := context.Background()
	profile := sampleProfile()

	require.NoError(t, r.SetProfile(ctx, "profile:partner", profile, time.Minute))
	assert.True(t, m.Exists("portal-test:profile:partner"))
	assert.Equal(t, time.Minute, m.TTL("portal-test:profile:partner"))

	got, ok, err := r.GetProfile(ctx, "profile:partner")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, profile, got)
}

func TestProfileExpires(t *testing.T) {
	r, m := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.SetProfile(ctx, "profile:partner", sampleProfile(), contact.DefaultProfileTTL))

	m.FastForward(contact.DefaultProfileTTL - time.Second)
	_, ok, err := r.GetProfile(ctx, "profile:partner")
	require.NoError(t, err)
	assert.True(t, ok)

	m.FastForward(2 * time.Second)
	_, ok, err = r.GetProfile(ctx, "profile:partner")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteProfile(t *testing.T) {
	r, m := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.SetProfile(ctx, "profile:partner", sampleProfile(), time.Minute))
	require.NoError(t, r.DeleteProfile(ctx, "profile:partner"))
	assert.False(t, m.Exists("portal-test:profile:partner"))

	_, ok, err := r.GetProfile(ctx, "profile:partner")
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting an absent key is not an error
	assert.NoError(t, r.DeleteProfile(ctx, "profile:partner"))
}

func TestStaleProfileShapeIsAMiss(t *testing.T) {
	r, m := newTestRedis(t)

	require.NoError(t, m.Set("portal-test:profile:partner", "not json"))

	got, ok, err := r.GetProfile(context.Background(), "profile:partner")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestGetProfileSurfacesServerErrors(t *testing.T) {
	r, m := newTestRedis(t)
	m.SetError("LOADING server is loading")

	_, ok, err := r.GetProfile(context.Background(), "profile:partner")
	assert.Error(t, err)
	assert.False(t, ok)
}
