package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"DocPortal/internal/blobstore"
	"DocPortal/internal/model"
	"DocPortal/internal/repo"

	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

var testDBSeq atomic.Int64

type testDeps struct {
	containers   repo.ContainerRepository
	requirements repo.RequirementRepository
	files        repo.FileRepository
	blobs        *blobstore.DiskStore
	logger       *zap.SugaredLogger
}

// newTestDeps wires real repositories over in-memory SQLite and a disk
// artifact store in a temp dir, so cascade behavior is exercised end to end.
func newTestDeps(t *testing.T) *testDeps {
	t.Helper()

	dsn := fmt.Sprintf("file:svctest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := db.AutoMigrate(&model.Container{}, &model.Requirement{}, &model.File{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}

	blobs, err := blobstore.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create disk store: %v", err)
	}

	return &testDeps{
		containers:   repo.NewContainerRepository(db),
		requirements: repo.NewRequirementRepository(db),
		files:        repo.NewFileRepository(db),
		blobs:        blobs,
		logger:       zap.NewNop().Sugar(),
	}
}

func (d *testDeps) containerService() *ContainerService {
	return NewContainerService(d.containers, d.requirements, d.logger)
}

func (d *testDeps) requirementService() *RequirementService {
	return NewRequirementService(d.requirements, d.files, d.blobs, d.logger)
}

func (d *testDeps) fileService() *FileService {
	return NewFileService(d.files, d.blobs, d.logger)
}
