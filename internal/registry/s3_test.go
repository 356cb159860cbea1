package registry

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/ml"
)

// fakeS3 keeps objects in memory behind the same API slice the store uses.
type fakeS3 struct {
	objects map[string][]byte
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[*in.Key]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func testStore(api s3API) *S3Store {
	return &S3Store{
		api:    api,
		bucket: "models",
		key:    "model.json.gz",
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func testEstimator(t *testing.T) *ml.Estimator {
	t.Helper()
	p, err := ml.NewPreprocessor([]string{"a"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	p.Fitted = true
	return ml.NewEstimator(p, ml.NewRandomForest(ml.ForestConfig{NEstimators: 1}))
}

func TestS3Store_ExistsBeforeAndAfterSave(t *testing.T) {
	ctx := context.Background()
	store := testStore(newFakeS3())

	ok, err := store.Exists(ctx)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if ok {
		t.Error("empty store should report no production model")
	}

	if err := store.Save(ctx, testEstimator(t)); err != nil {
		t.Fatalf("save: %v", err)
	}

	ok, err = store.Exists(ctx)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !ok {
		t.Error("store should report the saved model")
	}
}

func TestS3Store_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := testStore(newFakeS3())
	want := testEstimator(t)

	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Forest == nil || got.Preprocessor == nil {
		t.Error("loaded bundle is incomplete")
	}
	if !got.TrainedAt.Equal(want.TrainedAt) {
		t.Errorf("trained-at: got %v, want %v", got.TrainedAt, want.TrainedAt)
	}
}

func TestS3Store_LoadMissing(t *testing.T) {
	store := testStore(newFakeS3())
	if _, err := store.Load(context.Background()); err == nil {
		t.Error("expected error for missing model")
	}
}
