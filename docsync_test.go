package docsync_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/docsync"
	"github.com/agentstation/docsync/pkg/errors"
	"github.com/agentstation/docsync/pkg/repos"
)

// fakeBackend is an in-memory Backend for engine tests.
type fakeBackend struct {
	mu sync.Mutex

	snapshot []repos.Repository
	docNames []string

	listErr  error
	indexErr error

	nextTaskID string
	submitErr  error

	taskStates map[string]repos.TaskStatus

	regenErr error

	// blockIndex makes DocIndex park until the channel closes. It
	// deliberately ignores cancellation so tests control the ordering
	// of concurrent cycles. indexEntered signals the park.
	blockIndex   chan struct{}
	indexEntered chan struct{}

	// listCalls counts ListRepos invocations. parkListOnce makes the
	// next ListRepos call park until its context is canceled, so a
	// test can catch a cycle mid-fetch. listEntered signals the park.
	listCalls    int
	parkListOnce bool
	listEntered  chan struct{}
}

func (f *fakeBackend) ListRepos(ctx context.Context) ([]repos.Repository, error) {
	f.mu.Lock()
	f.listCalls++
	park := f.parkListOnce
	f.parkListOnce = false
	err := f.listErr
	out := make([]repos.Repository, len(f.snapshot))
	copy(out, f.snapshot)
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}

	if park {
		if f.listEntered != nil {
			select {
			case f.listEntered <- struct{}{}:
			default:
			}
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
		}
	}
	return out, nil
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeBackend) DocIndex(ctx context.Context) (repos.DocIndex, error) {
	f.mu.Lock()
	block := f.blockIndex
	f.mu.Unlock()

	if block != nil {
		if f.indexEntered != nil {
			select {
			case f.indexEntered <- struct{}{}:
			default:
			}
		}
		select {
		case <-block:
		case <-time.After(5 * time.Second):
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.indexErr != nil {
		return repos.NewDocIndex(), f.indexErr
	}
	return repos.NewDocIndex(f.docNames...), nil
}

func (f *fakeBackend) SubmitClone(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return f.nextTaskID, nil
}

func (f *fakeBackend) TaskStatus(ctx context.Context, taskID string) (repos.TaskStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if status, ok := f.taskStates[taskID]; ok {
		return status, nil
	}
	return repos.TaskPending, nil
}

func (f *fakeBackend) RegenerateDoc(ctx context.Context, repoID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.regenErr
}

func (f *fakeBackend) set(fn func(f *fakeBackend)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func newEngine(t *testing.T, fake *fakeBackend, opts ...docsync.Option) docsync.Client {
	t.Helper()
	opts = append([]docsync.Option{
		docsync.WithBackend(fake),
		docsync.WithLogger(zerolog.Nop()),
	}, opts...)
	ds, err := docsync.New(opts...)
	require.NoError(t, err)
	return ds
}

func TestNewRequiresBackend(t *testing.T) {
	_, err := docsync.New()
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestRefreshPublishesViews(t *testing.T) {
	fake := &fakeBackend{
		snapshot: []repos.Repository{
			{ID: 1, URL: "https://github.com/acme/a.git", Name: "repoA"},
			{ID: 2, URL: "https://github.com/acme/b.git", Name: "repoB"},
		},
		docNames: []string{"repoA"},
	}
	ds := newEngine(t, fake)

	require.NoError(t, ds.Refresh(context.Background()))

	views := ds.Views()
	require.Len(t, views, 2)
	assert.Equal(t, repos.Documented, views[0].DocStatus)
	assert.Equal(t, repos.NotDocumented, views[1].DocStatus)
	assert.Equal(t, repos.TaskSuccess, views[0].Status)
}

func TestSnapshotFailureKeepsPreviousViews(t *testing.T) {
	fake := &fakeBackend{
		snapshot: []repos.Repository{
			{ID: 1, URL: "https://github.com/acme/a.git", Name: "repoA"},
		},
	}
	ds := newEngine(t, fake)
	require.NoError(t, ds.Refresh(context.Background()))
	require.Len(t, ds.Views(), 1)

	fake.set(func(f *fakeBackend) {
		f.listErr = &errors.APIError{Endpoint: "/repos/list", StatusCode: 503}
	})

	err := ds.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsBackendUnavailable(err))

	assert.Len(t, ds.Views(), 1, "previous views survive a failed snapshot fetch")
}

func TestDocIndexFailureDegradesStatus(t *testing.T) {
	fake := &fakeBackend{
		snapshot: []repos.Repository{
			{ID: 1, URL: "https://github.com/acme/a.git", Name: "repoA"},
		},
		docNames: []string{"repoA"},
	}
	ds := newEngine(t, fake)
	require.NoError(t, ds.Refresh(context.Background()))
	require.Equal(t, repos.Documented, ds.Views()[0].DocStatus)

	fake.set(func(f *fakeBackend) {
		f.indexErr = &errors.APIError{Endpoint: "/docs/list", StatusCode: 500}
	})

	require.NoError(t, ds.Refresh(context.Background()), "index failure does not fail the cycle")
	require.Len(t, ds.Views(), 1)
	assert.Equal(t, repos.NotDocumented, ds.Views()[0].DocStatus)
}

func TestTrackSurfacesPendingImmediately(t *testing.T) {
	fake := &fakeBackend{nextTaskID: "t-1"}
	ds := newEngine(t, fake)

	taskID, err := ds.Track(context.Background(), "https://github.com/acme/new.git")
	require.NoError(t, err)
	assert.Equal(t, "t-1", taskID)

	views := ds.Views()
	require.Len(t, views, 1)
	assert.Equal(t, "new", views[0].Name)
	assert.Equal(t, repos.TaskPending, views[0].Status)
	assert.Equal(t, repos.NotDocumented, views[0].DocStatus)
	assert.True(t, views[0].Pending())
}

func TestTrackedCloneResolvesWhenSnapshotConfirms(t *testing.T) {
	fake := &fakeBackend{
		nextTaskID: "t-1",
		taskStates: map[string]repos.TaskStatus{"t-1": repos.TaskPending},
	}
	ds := newEngine(t, fake,
		docsync.WithTaskPollInterval(10*time.Millisecond),
	)

	var resolvedIDs []string
	var resolvedMu sync.Mutex
	ds.OnClonesResolved(func(ids []string) {
		resolvedMu.Lock()
		resolvedIDs = append(resolvedIDs, ids...)
		resolvedMu.Unlock()
	})

	_, err := ds.Track(context.Background(), "https://github.com/acme/new.git")
	require.NoError(t, err)

	// The task completes and the server now lists the repository.
	fake.set(func(f *fakeBackend) {
		f.taskStates["t-1"] = repos.TaskSuccess
		f.snapshot = []repos.Repository{
			{ID: 7, URL: "https://github.com/acme/new.git", Name: "new"},
		}
	})

	// The server row replaces the local placeholder, but the record
	// stays tracked until its terminal status is recorded.
	require.NoError(t, ds.Refresh(context.Background()))
	views := ds.Views()
	require.Len(t, views, 1)
	assert.Equal(t, 7, views[0].ID)

	// The watcher records the terminal status, after which the next
	// cycle resolves the record against the snapshot.
	require.NoError(t, ds.TaskWatchOn())
	defer func() { require.NoError(t, ds.TaskWatchOff()) }()

	require.Eventually(t, func() bool {
		resolvedMu.Lock()
		defer resolvedMu.Unlock()
		return len(resolvedIDs) == 1
	}, 2*time.Second, 20*time.Millisecond, "record never resolved")

	require.Len(t, ds.Views(), 1)
	assert.Equal(t, repos.TaskSuccess, ds.Views()[0].Status)
}

func TestStaleCycleIsDiscarded(t *testing.T) {
	fake := &fakeBackend{
		snapshot: []repos.Repository{
			{ID: 1, URL: "https://github.com/acme/a.git", Name: "repoA"},
		},
		docNames:     []string{"repoA"},
		blockIndex:   make(chan struct{}),
		indexEntered: make(chan struct{}, 1),
	}
	ds := newEngine(t, fake)

	// First cycle fetches the snapshot, then parks in the index fetch.
	block := fake.blockIndex
	firstDone := make(chan error, 1)
	go func() {
		firstDone <- ds.Refresh(context.Background())
	}()

	// Wait for the first cycle to park, run a second cycle to
	// completion, then unpark the first. It reaches publication after a
	// higher-numbered cycle already published, so its result must be
	// dropped.
	select {
	case <-fake.indexEntered:
	case <-time.After(2 * time.Second):
		t.Fatal("first cycle never reached the index fetch")
	}
	fake.set(func(f *fakeBackend) { f.blockIndex = nil })
	require.NoError(t, ds.Refresh(context.Background()))
	close(block)

	err := <-firstDone
	require.Error(t, err)
	assert.True(t, errors.IsStaleCycle(err))

	// The second cycle's result, with the real index, stays published.
	require.Len(t, ds.Views(), 1)
	assert.Equal(t, repos.Documented, ds.Views()[0].DocStatus)
}

func TestRegeneratePinsGenerating(t *testing.T) {
	fake := &fakeBackend{
		snapshot: []repos.Repository{
			{ID: 1, URL: "https://github.com/acme/a.git", Name: "repoA"},
		},
		docNames: []string{"repoA"},
	}
	ds := newEngine(t, fake)
	require.NoError(t, ds.Refresh(context.Background()))

	ds.MarkGenerating("repoA")
	assert.Equal(t, repos.Generating, ds.Views()[0].DocStatus)

	// The pin survives reconciliation even though the index still lists
	// the repository as documented.
	require.NoError(t, ds.Refresh(context.Background()))
	assert.Equal(t, repos.Generating, ds.Views()[0].DocStatus)

	ds.ClearGenerating("repoA")
	assert.Equal(t, repos.Documented, ds.Views()[0].DocStatus)

	require.NoError(t, ds.Refresh(context.Background()))
	assert.Equal(t, repos.Documented, ds.Views()[0].DocStatus)
}

func TestRegenerateSettlesPin(t *testing.T) {
	fake := &fakeBackend{
		snapshot: []repos.Repository{
			{ID: 1, URL: "https://github.com/acme/a.git", Name: "repoA"},
		},
		docNames: []string{"repoA"},
	}
	ds := newEngine(t, fake)
	require.NoError(t, ds.Refresh(context.Background()))

	require.NoError(t, ds.Regenerate(context.Background(), 1, "repoA"))
	assert.Equal(t, repos.Documented, ds.Views()[0].DocStatus, "pin clears once the request settles")
}

func TestAutoRefreshLifecycle(t *testing.T) {
	fake := &fakeBackend{
		snapshot: []repos.Repository{
			{ID: 1, URL: "https://github.com/acme/a.git", Name: "repoA"},
		},
	}

	updated := make(chan struct{}, 16)
	ds := newEngine(t, fake,
		docsync.WithRefreshInterval(10*time.Millisecond),
	)
	ds.OnViewsUpdated(func(views []repos.View) {
		select {
		case updated <- struct{}{}:
		default:
		}
	})

	require.NoError(t, ds.AutoRefreshOn())
	defer func() { require.NoError(t, ds.AutoRefreshOff()) }()

	select {
	case <-updated:
	case <-time.After(2 * time.Second):
		t.Fatal("no publication from the scheduler")
	}

	require.NoError(t, ds.AutoRefreshOff())
	require.Len(t, ds.Views(), 1)
}

func TestAutoRefreshSurvivesManualRefresh(t *testing.T) {
	fake := &fakeBackend{
		snapshot: []repos.Repository{
			{ID: 1, URL: "https://github.com/acme/a.git", Name: "repoA"},
		},
		parkListOnce: true,
		listEntered:  make(chan struct{}, 1),
	}
	ds := newEngine(t, fake,
		docsync.WithRefreshInterval(20*time.Millisecond),
	)

	require.NoError(t, ds.AutoRefreshOn())
	defer func() { require.NoError(t, ds.AutoRefreshOff()) }()

	// Wait for a scheduled cycle to park mid-fetch.
	select {
	case <-fake.listEntered:
	case <-time.After(2 * time.Second):
		t.Fatal("no scheduled cycle reached the snapshot fetch")
	}

	// A manual refresh cancels the parked cycle and publishes first.
	require.NoError(t, ds.Refresh(context.Background()))

	// The scheduler keeps running cycles after its own was canceled.
	seen := fake.calls()
	require.Eventually(t, func() bool {
		return fake.calls() > seen+1
	}, 2*time.Second, 20*time.Millisecond, "scheduler stopped after a manual refresh superseded its cycle")
}

func TestSchedulerLifecycleConcurrentToggle(t *testing.T) {
	fake := &fakeBackend{
		snapshot: []repos.Repository{
			{ID: 1, URL: "https://github.com/acme/a.git", Name: "repoA"},
		},
	}
	ds := newEngine(t, fake,
		docsync.WithRefreshInterval(10*time.Millisecond),
		docsync.WithTaskPollInterval(10*time.Millisecond),
	)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				assert.NoError(t, ds.AutoRefreshOn())
				assert.NoError(t, ds.TaskWatchOn())
				assert.NoError(t, ds.AutoRefreshOff())
				assert.NoError(t, ds.TaskWatchOff())
			}
		}()
	}
	wg.Wait()

	require.NoError(t, ds.AutoRefreshOff())
	require.NoError(t, ds.TaskWatchOff())
}

func TestTaskWatchMarksFailure(t *testing.T) {
	fake := &fakeBackend{
		nextTaskID: "t-9",
		taskStates: map[string]repos.TaskStatus{"t-9": repos.TaskReceived},
	}

	ds := newEngine(t, fake,
		docsync.WithTaskPollInterval(10*time.Millisecond),
	)

	failed := make(chan []string, 1)
	ds.OnClonesFailed(func(ids []string) {
		select {
		case failed <- ids:
		default:
		}
	})

	_, err := ds.Track(context.Background(), "https://github.com/acme/doomed.git")
	require.NoError(t, err)
	require.Len(t, ds.Views(), 1)

	fake.set(func(f *fakeBackend) {
		f.taskStates["t-9"] = repos.TaskFailure
	})

	require.NoError(t, ds.TaskWatchOn())
	defer func() { require.NoError(t, ds.TaskWatchOff()) }()

	select {
	case ids := <-failed:
		assert.Len(t, ids, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("failure never surfaced")
	}

	assert.Eventually(t, func() bool {
		return len(ds.Views()) == 0
	}, 2*time.Second, 20*time.Millisecond, "failed submission is dropped from the views")
}
