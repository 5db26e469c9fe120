package client

import (
	"log/slog"
	"strings"
	"time"
)

// Service handles client business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateClient(dto UpsertClientDTO, userID int64) (*Client, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("client validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	now := time.Now()
	c := &Client{
		UserID:      userID,
		Name:        strings.TrimSpace(dto.Name),
		ContactName: dto.ContactName,
		Email:       dto.Email,
		Address:     dto.Address,
		Phone:       dto.Phone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create client", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("client created", "client_id", c.ID, "user_id", userID)
	return c, nil
}

func (s *Service) GetClient(id, userID int64) (*Client, error) {
	c, err := s.repo.GetByID(id, userID)
	if err != nil {
		s.logger.Error("failed to get client", "error", err, "client_id", id, "user_id", userID)
		return nil, err
	}
	return c, nil
}

func (s *Service) ListClients(userID int64, limit, offset int) ([]*Client, error) {
	clients, err := s.repo.GetByUserID(userID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list clients", "error", err, "user_id", userID)
		return nil, err
	}
	return clients, nil
}

func (s *Service) UpdateClient(id int64, dto UpsertClientDTO, userID int64) (*Client, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(id, userID)
	if err != nil {
		return nil, err
	}

	c.Name = strings.TrimSpace(dto.Name)
	c.ContactName = dto.ContactName
	c.Email = dto.Email
	c.Address = dto.Address
	c.Phone = dto.Phone
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(c); err != nil {
		s.logger.Error("failed to update client", "error", err, "client_id", id, "user_id", userID)
		return nil, err
	}

	return c, nil
}

func (s *Service) DeleteClient(id, userID int64) error {
	if _, err := s.repo.GetByID(id, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(id, userID); err != nil {
		s.logger.Error("failed to delete client", "error", err, "client_id", id, "user_id", userID)
		return err
	}
	s.logger.Info("client deleted", "client_id", id, "user_id", userID)
	return nil
}
