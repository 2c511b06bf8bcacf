package users

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/verifyme/internal/common"
	"github.com/dmitrijs2005/verifyme/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func newRepo(t *testing.T, content string) (*TextFileRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "database.txt")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return NewTextFileRepository(path), path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

const seed = "0912345678,alice,00aa,11bb\n" +
	"broken line\n" +
	"bob@gmail.com,bob,22cc,33dd\n"

// ---- tests ----

func TestFind(t *testing.T) {
	repo, _ := newRepo(t, seed)
	ctx := context.Background()

	u, err := repo.Find(ctx, "bob@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, &models.User{Identifier: "bob@gmail.com", Username: "bob", SaltHex: "22cc", PasswordHash: "33dd"}, u)

	_, err = repo.Find(ctx, "BOB@gmail.com")
	require.ErrorIs(t, err, common.ErrorNotFound, "lookup is case-sensitive")

	_, err = repo.Find(ctx, "broken line")
	require.ErrorIs(t, err, common.ErrorNotFound, "malformed lines are never matched")
}

func TestFind_ReturnsFirstMatch(t *testing.T) {
	repo, _ := newRepo(t, "x,first,00,11\nx,second,22,33\n")

	u, err := repo.Find(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "first", u.Username)
}

func TestFindByUsername(t *testing.T) {
	repo, _ := newRepo(t, seed)

	u, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "0912345678", u.Identifier)

	_, err = repo.FindByUsername(context.Background(), "0912345678")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestFind_MissingFileIsStoreError(t *testing.T) {
	repo, _ := newRepo(t, "")

	_, err := repo.Find(context.Background(), "0912345678")
	require.ErrorIs(t, err, common.ErrorStoreIO)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestAppend_CreatesFileAndKeepsExistingLines(t *testing.T) {
	repo, path := newRepo(t, "")
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, &models.User{Identifier: "0912345678", Username: "alice", SaltHex: "00", PasswordHash: "11"}))
	require.NoError(t, repo.Append(ctx, &models.User{Identifier: "0912345679", Username: "bob", SaltHex: "22", PasswordHash: "33"}))

	assert.Equal(t, "0912345678,alice,00,11\n0912345679,bob,22,33\n", readFile(t, path))
}

func TestAppend_RejectsDuplicates(t *testing.T) {
	repo, path := newRepo(t, seed)
	ctx := context.Background()

	err := repo.Append(ctx, &models.User{Identifier: "0912345678", Username: "carol", SaltHex: "00", PasswordHash: "11"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	err = repo.Append(ctx, &models.User{Identifier: "0900000000", Username: "alice", SaltHex: "00", PasswordHash: "11"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	assert.Equal(t, seed, readFile(t, path))
}

func TestUpsertByIdentifier_ReplacesOnlyMatchingLine(t *testing.T) {
	repo, path := newRepo(t, seed)

	updated := &models.User{Identifier: "0912345678", Username: "alice", SaltHex: "ffff", PasswordHash: "eeee"}
	require.NoError(t, repo.UpsertByIdentifier(context.Background(), "0912345678", updated))

	want := "0912345678,alice,ffff,eeee\n" +
		"broken line\n" +
		"bob@gmail.com,bob,22cc,33dd\n"
	assert.Equal(t, want, readFile(t, path))
}

func TestUpsertByIdentifier_KeepsCRLFLinesVerbatim(t *testing.T) {
	repo, path := newRepo(t, "0912345678,alice,00aa,11bb\r\n"+
		"broken line\r\n"+
		"bob@gmail.com,bob,22cc,33dd\r\n")
	ctx := context.Background()

	u, err := repo.Find(ctx, "bob@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, "33dd", u.PasswordHash)

	err = repo.UpsertByIdentifier(ctx, "bob@gmail.com", &models.User{
		Identifier: "bob@gmail.com", Username: "bob", SaltHex: "44ee", PasswordHash: "55ff",
	})
	require.NoError(t, err)

	want := "0912345678,alice,00aa,11bb\r\n" +
		"broken line\r\n" +
		"bob@gmail.com,bob,44ee,55ff\n"
	assert.Equal(t, want, readFile(t, path))
}

func TestUpsertByIdentifier_UnknownIdentifierLeavesFile(t *testing.T) {
	repo, path := newRepo(t, seed)

	err := repo.UpsertByIdentifier(context.Background(), "0999999999",
		&models.User{Identifier: "0999999999", Username: "x", SaltHex: "00", PasswordHash: "11"})
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, seed, readFile(t, path))
}

func TestUpsertByIdentifier_MissingFile(t *testing.T) {
	repo, _ := newRepo(t, "")

	err := repo.UpsertByIdentifier(context.Background(), "0912345678", &models.User{})
	require.ErrorIs(t, err, common.ErrorStoreIO)
}

func TestCanceledContext(t *testing.T) {
	repo, _ := newRepo(t, seed)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Find(ctx, "0912345678")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, repo.Append(ctx, &models.User{}), context.Canceled)
}
