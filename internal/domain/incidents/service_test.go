package incidents

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"ngo-animal-rescue/internal/platform/httpclient"
	"ngo-animal-rescue/internal/platform/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo + dispatcher
// -------------------------

type testRepo struct {
	byID      map[string]Incident
	createErr error
}

func newTestRepo(seed ...Incident) *testRepo {
	r := &testRepo{byID: map[string]Incident{}}
	for _, in := range seed {
		r.byID[in.ID] = in
	}
	return r
}

func (r *testRepo) Create(ctx context.Context, in Incident) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.byID[in.ID] = in
	return nil
}

func (r *testRepo) Update(ctx context.Context, in Incident) error {
	if _, ok := r.byID[in.ID]; !ok {
		return errors.New("repo: not found")
	}
	r.byID[in.ID] = in
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Incident, error) {
	in, ok := r.byID[id]
	if !ok {
		return Incident{}, errors.New("repo: not found")
	}
	return in, nil
}

func (r *testRepo) List(ctx context.Context) ([]Incident, error) {
	out := make([]Incident, 0, len(r.byID))
	for _, in := range r.byID {
		out = append(out, in)
	}
	return out, nil
}

type testDispatcher struct {
	sent []Report
	err  error
}

func (d *testDispatcher) Dispatch(ctx context.Context, r Report) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	d.sent = append(d.sent, r)
	return "remote-1", nil
}

func newTestService(d Dispatcher, seed ...Incident) (*Service, *testRepo) {
	repo := newTestRepo(seed...)
	svc := NewService(repo, d, nil, nil)
	svc.now = func() time.Time { return time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC) }
	return svc, repo
}

func validReport() Report {
	return Report{
		Location: &Location{Lat: -12.0464, Lng: -77.0428},
		Description: Description{
			MainDescription: "Injured dog under the bridge",
			AnimalType:      "Dog",
			UrgencyLevel:    "HIGH",
			AnimalCount:     1,
		},
	}
}

func TestReport_DispatchesThenRecords(t *testing.T) {
	d := &testDispatcher{}
	svc, repo := newTestService(d)

	in, err := svc.Report(context.Background(), validReport())
	require.NoError(t, err)

	require.Len(t, d.sent, 1)
	assert.Equal(t, AnimalDog, d.sent[0].Description.AnimalType)
	assert.Equal(t, UrgencyHigh, d.sent[0].Description.UrgencyLevel)

	assert.Equal(t, "remote-1", in.RemoteID)
	assert.Equal(t, StatusReported, in.Status)
	assert.Contains(t, repo.byID, in.ID)
}

func TestReport_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *Report)
		field  string
		msg    string
	}{
		{"missing location", func(r *Report) { r.Location = nil }, "location", "Location is required to report an emergency"},
		{"latitude out of range", func(r *Report) { r.Location = &Location{Lat: 91, Lng: 0} }, "location", "Latitude must be between -90 and 90"},
		{"longitude NaN", func(r *Report) { r.Location = &Location{Lat: 0, Lng: math.NaN()} }, "location", "Longitude must be between -180 and 180"},
		{"short description", func(r *Report) { r.Description.MainDescription = "help!" }, "description", "Please provide more details"},
		{"animal type", func(r *Report) { r.Description.AnimalType = "dragon" }, "animalType", "Animal type is required"},
		{"urgency", func(r *Report) { r.Description.UrgencyLevel = "" }, "urgencyLevel", "Urgency level is required"},
		{"count zero", func(r *Report) { r.Description.AnimalCount = 0 }, "animalCount", "Number must be positive"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := &testDispatcher{}
			svc, repo := newTestService(d)

			r := validReport()
			tc.mutate(&r)

			_, err := svc.Report(context.Background(), r)
			fields, ok := validation.Fields(err)
			require.True(t, ok)
			assert.Equal(t, tc.msg, fields[tc.field])
			assert.Empty(t, d.sent)
			assert.Empty(t, repo.byID)
		})
	}
}

func TestReport_DispatchFailureNotRecorded(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"remote message", &httpclient.HTTPError{StatusCode: 400, Body: `{"error":"Location outside service area"}`}, "Location outside service area"},
		{"network", errors.New("connection reset"), MsgDispatchFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo := newTestService(&testDispatcher{err: tc.err})

			_, err := svc.Report(context.Background(), validReport())
			var de *DispatchError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tc.want, de.Message)
			assert.Empty(t, repo.byID)
		})
	}
}

func TestReport_NoDispatcher(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Report(context.Background(), validReport())
	assert.ErrorIs(t, err, ErrDispatchUnavailable)
}

func TestReport_LocalRecordFailureStillSucceeds(t *testing.T) {
	d := &testDispatcher{}
	svc, repo := newTestService(d)
	repo.createErr = errors.New("disk full")

	in, err := svc.Report(context.Background(), validReport())
	require.NoError(t, err)
	assert.Equal(t, "remote-1", in.RemoteID)
}

func TestUpdateStatusAndOpenCount(t *testing.T) {
	svc, _ := newTestService(&testDispatcher{}, Seed()...)
	ctx := context.Background()

	open, err := svc.Open(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, open)

	in, err := svc.UpdateStatus(ctx, "1", StatusResolved, "dog taken to vet")
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, in.Status)
	assert.Equal(t, "dog taken to vet", in.Notes)

	open, err = svc.Open(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, open)

	_, err = svc.UpdateStatus(ctx, "1", "Closed", "")
	_, ok := validation.Fields(err)
	assert.True(t, ok)

	_, err = svc.UpdateStatus(ctx, "nope", StatusResolved, "")
	assert.ErrorIs(t, err, ErrNotFound)

	resolved, err := svc.List(ctx, StatusResolved)
	require.NoError(t, err)
	assert.Len(t, resolved, 2)
	assert.Equal(t, "1", resolved[0].ID)
}
