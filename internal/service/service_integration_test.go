package service

import (
	"context"
	"errors"
	"testing"

	"github.com/perchpost/perchpost/internal/metrics"
	"github.com/perchpost/perchpost/internal/repository"
	"github.com/perchpost/perchpost/internal/testutil"
)

type serviceEnv struct {
	users    *UserService
	messages *MessageService
	graph    *GraphService
	recorder *metrics.InMemoryRecorder
}

func newServiceEnv(t *testing.T, ctx context.Context) *serviceEnv {
	t.Helper()

	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	if err := testutil.ResetSchema(ctx, dbURL); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	repo, err := repository.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.TruncateAll(ctx, repo.Pool()); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}

	recorder := metrics.NewInMemory()
	return &serviceEnv{
		users:    NewUserService(repo, recorder),
		messages: NewMessageService(repo, recorder),
		graph:    NewGraphService(repo, recorder),
		recorder: recorder,
	}
}

func (e *serviceEnv) signUp(t *testing.T, ctx context.Context, username string) string {
	t.Helper()
	user, err := e.users.SignUp(ctx, SignUpInput{
		Username: username,
		Email:    username + "@example.com",
		Password: testutil.TestPassword,
	})
	if err != nil {
		t.Fatalf("SignUp(%q) failed: %v", username, err)
	}
	return user.ID
}

func TestUserService_SignUpAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	env := newServiceEnv(t, ctx)

	username := testutil.UniqueUsername("roundtrip")
	userID := env.signUp(t, ctx, username)

	user, err := env.users.Authenticate(ctx, username, testutil.TestPassword)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user.ID != userID {
		t.Errorf("authenticated ID = %q, want %q", user.ID, userID)
	}
	if user.ImageURL == "" {
		t.Error("signup should apply the default profile image")
	}

	snap := env.recorder.Snapshot()
	if snap.Signups != 1 || snap.LoginSuccesses != 1 {
		t.Errorf("snapshot = %+v, want 1 signup and 1 login success", snap)
	}
}

func TestUserService_SignUp_DuplicateIdentity(t *testing.T) {
	ctx := context.Background()
	env := newServiceEnv(t, ctx)

	username := testutil.UniqueUsername("taken")
	env.signUp(t, ctx, username)

	_, err := env.users.SignUp(ctx, SignUpInput{
		Username: username,
		Email:    "different@example.com",
		Password: testutil.TestPassword,
	})
	if !errors.Is(err, ErrDuplicateIdentity) {
		t.Errorf("duplicate username = %v, want ErrDuplicateIdentity", err)
	}

	_, err = env.users.SignUp(ctx, SignUpInput{
		Username: testutil.UniqueUsername("other"),
		Email:    username + "@example.com",
		Password: testutil.TestPassword,
	})
	if !errors.Is(err, ErrDuplicateIdentity) {
		t.Errorf("duplicate email = %v, want ErrDuplicateIdentity", err)
	}
}

func TestUserService_Authenticate_IndistinguishableFailures(t *testing.T) {
	ctx := context.Background()
	env := newServiceEnv(t, ctx)

	username := testutil.UniqueUsername("victim")
	env.signUp(t, ctx, username)

	_, errWrongPW := env.users.Authenticate(ctx, username, "wrong-password")
	_, errUnknown := env.users.Authenticate(ctx, "no-such-user", testutil.TestPassword)

	if !errors.Is(errWrongPW, ErrAuthFailed) {
		t.Errorf("wrong password = %v, want ErrAuthFailed", errWrongPW)
	}
	if !errors.Is(errUnknown, ErrAuthFailed) {
		t.Errorf("unknown username = %v, want ErrAuthFailed", errUnknown)
	}
	if errWrongPW.Error() != errUnknown.Error() {
		t.Error("failure messages must not reveal whether the username exists")
	}
}

func TestUserService_UpdateProfile_RequiresCurrentPassword(t *testing.T) {
	ctx := context.Background()
	env := newServiceEnv(t, ctx)

	username := testutil.UniqueUsername("editor")
	userID := env.signUp(t, ctx, username)

	newBio := "fresh bio"
	_, err := env.users.UpdateProfile(ctx, userID, UpdateProfileInput{
		Bio:             &newBio,
		CurrentPassword: "wrong-password",
	})
	if !errors.Is(err, ErrAuthFailed) {
		t.Errorf("update with wrong password = %v, want ErrAuthFailed", err)
	}

	updated, err := env.users.UpdateProfile(ctx, userID, UpdateProfileInput{
		Bio:             &newBio,
		CurrentPassword: testutil.TestPassword,
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Bio != newBio {
		t.Errorf("Bio = %q, want %q", updated.Bio, newBio)
	}

	// Untouched fields survive the partial update.
	if updated.Username != username {
		t.Errorf("Username changed unexpectedly: %q", updated.Username)
	}
}

func TestMessageService_PostAndDelete_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	env := newServiceEnv(t, ctx)

	owner := env.signUp(t, ctx, testutil.UniqueUsername("owner"))
	intruder := env.signUp(t, ctx, testutil.UniqueUsername("intruder"))

	msg, err := env.messages.Post(ctx, owner, "mine alone")
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if msg.UserID != owner {
		t.Errorf("message owner = %q, want %q", msg.UserID, owner)
	}

	if err := env.messages.Delete(ctx, intruder, msg.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("non-owner delete = %v, want ErrNotAuthorized", err)
	}

	// The rejected delete changed nothing.
	if _, err := env.messages.Get(ctx, msg.ID); err != nil {
		t.Fatalf("message should still exist after rejected delete: %v", err)
	}

	if err := env.messages.Delete(ctx, owner, msg.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := env.messages.Get(ctx, msg.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted message lookup = %v, want ErrNotFound", err)
	}

	if err := env.messages.Delete(ctx, owner, msg.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete = %v, want ErrNotFound", err)
	}
}

func TestGraphService_FollowLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newServiceEnv(t, ctx)

	alice := env.signUp(t, ctx, testutil.UniqueUsername("alice"))
	bob := env.signUp(t, ctx, testutil.UniqueUsername("bob"))

	edge, err := env.graph.Follow(ctx, alice, bob)
	if err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	if edge.FollowerID != alice || edge.FollowedID != bob {
		t.Errorf("edge endpoints = (%q, %q), want (%q, %q)",
			edge.FollowerID, edge.FollowedID, alice, bob)
	}

	if _, err := env.graph.Follow(ctx, alice, bob); !errors.Is(err, ErrAlreadyFollowing) {
		t.Errorf("duplicate follow = %v, want ErrAlreadyFollowing", err)
	}

	if _, err := env.graph.Follow(ctx, alice, "no-such-user"); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("follow of unknown user = %v, want ErrUnknownUser", err)
	}

	following, err := env.graph.IsFollowing(ctx, alice, bob)
	if err != nil {
		t.Fatalf("IsFollowing failed: %v", err)
	}
	if !following {
		t.Error("alice should follow bob")
	}

	followedBy, err := env.graph.IsFollowedBy(ctx, bob, alice)
	if err != nil {
		t.Fatalf("IsFollowedBy failed: %v", err)
	}
	if !followedBy {
		t.Error("bob should be followed by alice")
	}

	if err := env.graph.Unfollow(ctx, alice, bob); err != nil {
		t.Fatalf("Unfollow failed: %v", err)
	}
	if err := env.graph.Unfollow(ctx, alice, bob); !errors.Is(err, ErrNotFollowing) {
		t.Errorf("double unfollow = %v, want ErrNotFollowing", err)
	}
}

func TestMessageService_Timeline_OwnPlusFollowed(t *testing.T) {
	ctx := context.Background()
	env := newServiceEnv(t, ctx)

	reader := env.signUp(t, ctx, testutil.UniqueUsername("reader"))
	followed := env.signUp(t, ctx, testutil.UniqueUsername("followed"))
	stranger := env.signUp(t, ctx, testutil.UniqueUsername("stranger"))

	if _, err := env.graph.Follow(ctx, reader, followed); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	if _, err := env.messages.Post(ctx, reader, "own"); err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if _, err := env.messages.Post(ctx, followed, "followed"); err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if _, err := env.messages.Post(ctx, stranger, "stranger"); err != nil {
		t.Fatalf("Post failed: %v", err)
	}

	timeline, err := env.messages.Timeline(ctx, reader, 0)
	if err != nil {
		t.Fatalf("Timeline failed: %v", err)
	}
	if len(timeline) != 2 {
		t.Fatalf("timeline length = %d, want 2", len(timeline))
	}
	for _, m := range timeline {
		if m.UserID != reader && m.UserID != followed {
			t.Errorf("unexpected timeline entry from %q", m.UserID)
		}
	}
}

func TestUserService_DeleteAccount_CascadesContent(t *testing.T) {
	ctx := context.Background()
	env := newServiceEnv(t, ctx)

	doomed := env.signUp(t, ctx, testutil.UniqueUsername("doomed"))
	witness := env.signUp(t, ctx, testutil.UniqueUsername("witness"))

	msg, err := env.messages.Post(ctx, doomed, "last words")
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if _, err := env.graph.Follow(ctx, doomed, witness); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	if err := env.users.DeleteAccount(ctx, doomed, doomed); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}

	if _, err := env.messages.Get(ctx, msg.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("messages should cascade with the account, got %v", err)
	}

	followers, err := env.graph.FollowersOf(ctx, witness)
	if err != nil {
		t.Fatalf("FollowersOf failed: %v", err)
	}
	if len(followers) != 0 {
		t.Errorf("witness should have no followers after cascade, got %d", len(followers))
	}
}
