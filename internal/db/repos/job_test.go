package repos

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/fixflow/fixflow/internal/db/models"
	"github.com/fixflow/fixflow/internal/status"
)

type JobRepositoryTestSuite struct {
	DBRepositoryTestSuite
}

func TestJobRepository(t *testing.T) {
	suite.Run(t, new(JobRepositoryTestSuite))
}

func (s *JobRepositoryTestSuite) TestCreate() {
	job := s.createTestJob(1)
	s.NotZero(job.ID)
}

func (s *JobRepositoryTestSuite) TestCreateRequiresBusinessID() {
	err := s.jobRepo.Create(s.ctx, &models.Job{Code: "JOB-0001"})
	s.Error(err)
}

func (s *JobRepositoryTestSuite) TestGetByID() {
	original := s.createTestJob(1)

	found, err := s.jobRepo.GetByID(s.ctx, 1, original.ID)
	s.NoError(err)
	s.Equal(original.ID, found.ID)
	s.Equal(original.Code, found.Code)

	// Wrong tenant looks exactly like a missing row
	_, err = s.jobRepo.GetByID(s.ctx, 2, original.ID)
	s.ErrorIs(err, ErrNotFound)

	_, err = s.jobRepo.GetByID(s.ctx, 1, 999)
	s.ErrorIs(err, ErrNotFound)
}

func (s *JobRepositoryTestSuite) TestUpdate() {
	job := s.createTestJob(1)

	job.Status = status.InProgress
	job.AssignedTo = 7
	s.NoError(s.jobRepo.Update(s.ctx, job))
	s.Equal(2, job.Version)

	updated, err := s.jobRepo.GetByID(s.ctx, 1, job.ID)
	s.NoError(err)
	s.Equal(status.InProgress, updated.Status)
	s.Equal(uint(7), updated.AssignedTo)
	s.Equal(2, updated.Version)
}

func (s *JobRepositoryTestSuite) TestUpdateVersionConflict() {
	job := s.createTestJob(1)

	stale := *job

	job.Status = status.InProgress
	s.NoError(s.jobRepo.Update(s.ctx, job))

	// The second writer still holds version 1 and must lose cleanly.
	stale.Status = status.OnHold
	err := s.jobRepo.Update(s.ctx, &stale)
	s.ErrorIs(err, ErrConflict)

	current, err := s.jobRepo.GetByID(s.ctx, 1, job.ID)
	s.NoError(err)
	s.Equal(status.InProgress, current.Status)
}

func (s *JobRepositoryTestSuite) TestUpdateMissingJob() {
	job := s.createTestJob(1)
	s.NoError(s.jobRepo.Delete(s.ctx, 1, job.ID))

	job.Status = status.InProgress
	s.ErrorIs(s.jobRepo.Update(s.ctx, job), ErrNotFound)
}

func (s *JobRepositoryTestSuite) TestDelete() {
	job := s.createTestJob(1)

	s.NoError(s.jobRepo.Delete(s.ctx, 1, job.ID))
	_, err := s.jobRepo.GetByID(s.ctx, 1, job.ID)
	s.ErrorIs(err, ErrNotFound)

	s.ErrorIs(s.jobRepo.Delete(s.ctx, 1, job.ID), ErrNotFound)
}

func (s *JobRepositoryTestSuite) TestList() {
	s.createTestJob(1)
	job2 := &models.Job{
		BusinessID: 1,
		Code:       "JOB-0002",
		PublicID:   uuid.NewString(),
		CustomerID: 1,
		Equipment:  "Laptop",
		Status:     status.InProgress,
		Version:    1,
		CreatedAt:  time.Now(),
	}
	s.Require().NoError(s.jobRepo.Create(s.ctx, job2))

	other := &models.Job{
		BusinessID: 2,
		Code:       "JOB-0001",
		PublicID:   uuid.NewString(),
		CustomerID: 1,
		Equipment:  "Phone",
		Status:     status.WaitingAssessment,
		Version:    1,
		CreatedAt:  time.Now(),
	}
	s.Require().NoError(s.jobRepo.Create(s.ctx, other))

	opts := &models.ListOptions{Limit: 100}

	jobs, err := s.jobRepo.List(s.ctx, 1, "", opts)
	s.NoError(err)
	s.Len(jobs, 2)

	jobs, err = s.jobRepo.List(s.ctx, 1, status.InProgress, opts)
	s.NoError(err)
	s.Len(jobs, 1)
	s.Equal("JOB-0002", jobs[0].Code)

	jobs, err = s.jobRepo.List(s.ctx, 2, "", opts)
	s.NoError(err)
	s.Len(jobs, 1)
}

func (s *JobRepositoryTestSuite) TestNextCode() {
	code, err := s.jobRepo.NextCode(s.ctx, 1)
	s.NoError(err)
	s.Equal("JOB-0001", code)

	job := s.createTestJob(1)

	code, err = s.jobRepo.NextCode(s.ctx, 1)
	s.NoError(err)
	s.Equal("JOB-0002", code)

	// Deleting a job must not free its code for reuse
	s.NoError(s.jobRepo.Delete(s.ctx, 1, job.ID))
	code, err = s.jobRepo.NextCode(s.ctx, 1)
	s.NoError(err)
	s.Equal("JOB-0002", code)

	// Codes are sequenced per tenant
	code, err = s.jobRepo.NextCode(s.ctx, 2)
	s.NoError(err)
	s.Equal("JOB-0001", code)
}
