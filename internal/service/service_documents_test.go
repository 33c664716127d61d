package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/budget-keeper/internal/crypto"
	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/internal/store"
	"github.com/MKhiriev/budget-keeper/models"
)

func registerAs(t *testing.T, env *testEnv, email string) models.Identity {
	t.Helper()

	registration, err := env.auth.Register(context.Background(), email, testPassword)
	require.NoError(t, err)
	return env.identity(t, registration.Session)
}

// S2 and property 3: a written document reads back unchanged while the raw
// blob is ciphertext under "<userId>/<key>".
func TestDocuments_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	alice := registerAs(t, env, testEmail)
	ctx := context.Background()

	payload := []byte(`{"weeks":[{"id":"w1","spent":10}]}`)
	require.NoError(t, env.documents.WriteDocument(ctx, alice, "weeks", payload))

	got, err := env.documents.ReadDocument(ctx, alice, "weeks")
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	raw, err := env.blobs.Get(ctx, alice.UserID+"/weeks")
	require.NoError(t, err)
	assert.NotEqual(t, payload, raw)
	assert.False(t, bytes.Contains(raw, []byte("spent")))
	assert.Len(t, raw, crypto.NonceSize+len(payload)+crypto.TagSize)
}

func TestDocuments_OverwriteAndNestedKeys(t *testing.T) {
	env := newTestEnv(t)
	alice := registerAs(t, env, testEmail)
	ctx := context.Background()

	require.NoError(t, env.documents.WriteDocument(ctx, alice, "2026/03/budget.json", []byte(`{"v":1}`)))
	require.NoError(t, env.documents.WriteDocument(ctx, alice, "2026/03/budget.json", []byte(`{"v":2}`)))

	got, err := env.documents.ReadDocument(ctx, alice, "2026/03/budget.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got))
}

func TestDocuments_ReadMissing(t *testing.T) {
	env := newTestEnv(t)
	alice := registerAs(t, env, testEmail)

	_, err := env.documents.ReadDocument(context.Background(), alice, "nothing-here")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

// Property 4: another user never sees the document.
func TestDocuments_CrossUserIsolation(t *testing.T) {
	env := newTestEnv(t)
	alice := registerAs(t, env, testEmail)
	bob := registerAs(t, env, "bob@x.com")
	ctx := context.Background()

	require.NoError(t, env.documents.WriteDocument(ctx, alice, "weeks", []byte(`{"owner":"alice"}`)))

	_, err := env.documents.ReadDocument(ctx, bob, "weeks")
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	keys, err := env.documents.ListDocuments(ctx, bob, "")
	require.NoError(t, err)
	assert.Empty(t, keys)

	// A forged identity pairing Bob's email with Alice's id is rejected.
	forged := models.Identity{UserID: alice.UserID, Email: bob.Email}
	_, err = env.documents.ReadDocument(ctx, forged, "weeks")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

// Property 5: any flipped bit and any swap between users breaks decryption.
func TestDocuments_TamperResistance(t *testing.T) {
	env := newTestEnv(t)
	alice := registerAs(t, env, testEmail)
	bob := registerAs(t, env, "bob@x.com")
	ctx := context.Background()

	require.NoError(t, env.documents.WriteDocument(ctx, alice, "weeks", []byte(`{"owner":"alice"}`)))
	require.NoError(t, env.documents.WriteDocument(ctx, bob, "weeks", []byte(`{"owner":"bob"}`)))

	aliceKey, bobKey := alice.UserID+"/weeks", bob.UserID+"/weeks"
	original, err := env.blobs.Get(ctx, aliceKey)
	require.NoError(t, err)

	for i := range original {
		tampered := bytes.Clone(original)
		tampered[i] ^= 0x01
		require.NoError(t, env.blobs.Put(ctx, aliceKey, tampered))

		_, err = env.documents.ReadDocument(ctx, alice, "weeks")
		require.ErrorIs(t, err, store.ErrStorageFailure, "byte %d", i)
	}
	require.NoError(t, env.blobs.Put(ctx, aliceKey, original))

	bobBlob, err := env.blobs.Get(ctx, bobKey)
	require.NoError(t, err)
	require.NoError(t, env.blobs.Put(ctx, aliceKey, bobBlob))
	require.NoError(t, env.blobs.Put(ctx, bobKey, original))

	_, err = env.documents.ReadDocument(ctx, alice, "weeks")
	assert.ErrorIs(t, err, store.ErrStorageFailure)
	_, err = env.documents.ReadDocument(ctx, bob, "weeks")
	assert.ErrorIs(t, err, store.ErrStorageFailure)

	// Moving a blob to another key of the same user fails too.
	require.NoError(t, env.blobs.Put(ctx, alice.UserID+"/copy", original))
	_, err = env.documents.ReadDocument(ctx, alice, "copy")
	assert.ErrorIs(t, err, store.ErrStorageFailure)
}

func TestDocuments_ListStripsUserPrefix(t *testing.T) {
	env := newTestEnv(t)
	alice := registerAs(t, env, testEmail)
	ctx := context.Background()

	for _, key := range []string{"weeks", "2026/01", "2026/02", "settings.json"} {
		require.NoError(t, env.documents.WriteDocument(ctx, alice, key, []byte(`{}`)))
	}

	keys, err := env.documents.ListDocuments(ctx, alice, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026/01", "2026/02", "settings.json", "weeks"}, keys)

	keys, err = env.documents.ListDocuments(ctx, alice, "2026/")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026/01", "2026/02"}, keys)
}

func TestDocuments_Delete(t *testing.T) {
	env := newTestEnv(t)
	alice := registerAs(t, env, testEmail)
	ctx := context.Background()

	require.NoError(t, env.documents.WriteDocument(ctx, alice, "weeks", []byte(`{}`)))
	require.NoError(t, env.documents.DeleteDocument(ctx, alice, "weeks"))
	require.NoError(t, env.documents.DeleteDocument(ctx, alice, "weeks"))

	_, err := env.documents.ReadDocument(ctx, alice, "weeks")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDocuments_Validation(t *testing.T) {
	env := newTestEnv(t)
	alice := registerAs(t, env, testEmail)
	ctx := context.Background()

	for _, key := range []string{"", "../weeks", "a//b", "/abs", "bad key", "a/./b"} {
		err := env.documents.WriteDocument(ctx, alice, key, []byte(`{}`))
		assert.ErrorIs(t, err, ErrValidation, "key %q", key)

		_, err = env.documents.ReadDocument(ctx, alice, key)
		assert.ErrorIs(t, err, ErrValidation, "key %q", key)
	}

	err := env.documents.WriteDocument(ctx, alice, "weeks", []byte(`{"unterminated":`))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.documents.ListDocuments(ctx, alice, "../")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.documents.ReadDocument(ctx, models.Identity{}, "weeks")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestDocuments_UnknownAccount(t *testing.T) {
	env := newTestEnv(t)
	ghost := models.Identity{UserID: "0190c3f4-0000-7000-8000-000000000000", Email: "ghost@x.com"}

	_, err := env.documents.ReadDocument(context.Background(), ghost, "weeks")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = env.documents.ListDocuments(context.Background(), ghost, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestDocuments_WrongSigningSecretCannotUnlock(t *testing.T) {
	env := newTestEnv(t)
	alice := registerAs(t, env, testEmail)
	ctx := context.Background()

	other := testAuthConfig
	other.SigningSecret = "fedcba9876543210fedcba9876543210"
	documents := NewDocumentService(env.blobs, env.users, crypto.NewKeyChainService(cheapHashParams), other, logger.Nop())

	err := documents.WriteDocument(ctx, alice, "weeks", []byte(`{}`))
	assert.ErrorIs(t, err, store.ErrStorageFailure)
}
