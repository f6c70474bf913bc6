package service

import (
	"context"
	"errors"

	"github.com/AlibekovAA/account-core/internal/account/domain"
	"github.com/AlibekovAA/account-core/internal/account/repository"
	"github.com/AlibekovAA/account-core/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/account-core/internal/common/crypto"
	"github.com/AlibekovAA/account-core/internal/common/logger"
)

type AccountService struct {
	repo        repository.Repository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	validator   CredentialValidator
	uniqueness  UniquenessChecker
	log         *logger.Logger
}

func NewAccountService(
	repo repository.Repository,
	hasher commoncrypto.PasswordHasher,
	idGenerator commoncrypto.IDGenerator,
	clk clock.Clock,
	log *logger.Logger,
) *AccountService {
	return &AccountService{
		repo:        repo,
		hasher:      hasher,
		idGenerator: idGenerator,
		clock:       clk,
		validator:   NewCredentialValidator(),
		uniqueness:  NewUniquenessChecker(repo),
		log:         log,
	}
}

// Create validates the input, hashes the password and persists a new
// non-admin account. Rule violations come back as domain.ValidationErrors.
func (s *AccountService) Create(ctx context.Context, input domain.CreateInput) (domain.Account, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "create_attempt",
	}).Debug("create account attempt")

	violations := s.validator.Validate(input)

	uniqueness, err := s.checkUniqueness(ctx, input, violations)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "create_uniqueness_failed",
		}).Errorf("create failed: uniqueness lookup error: %v", err)
		recordCreation(outcomeError)
		return domain.Account{}, ErrAccountStoreFailure.WithCause(err)
	}
	violations = append(violations, uniqueness...)

	if len(violations) > 0 {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "create_validation_failed",
		}).Warnf("create rejected: %v", violations)
		recordViolations(violations)
		recordCreation(outcomeRejected)
		return domain.Account{}, violations
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "create_hash_failed",
		}).Errorf("create failed: password hash error: %v", err)
		recordCreation(outcomeError)
		return domain.Account{}, ErrHashFailed.WithCause(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "create_id_generation_failed",
		}).Errorf("create failed: id generation error: %v", err)
		recordCreation(outcomeError)
		return domain.Account{}, err
	}

	now := s.clock.Now()
	account := domain.Account{
		ID:        domain.ID(id),
		Username:  input.Username,
		Email:     input.Email,
		Digest:    digest,
		IsAdmin:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, account); err != nil {
		if dup, ok := repository.AsDuplicate(err); ok {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"field":    string(dup.Field),
				"action":   "create_duplicate_race",
			}).Warn("create rejected: lost uniqueness race")
			recordDuplicateRace(dup.Field)
			recordCreation(outcomeRejected)
			return domain.Account{}, domain.ValidationErrors{{Field: dup.Field, Rule: domain.RuleAlreadyTaken}}
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "create_insert_failed",
		}).Errorf("create failed: %v", err)
		recordCreation(outcomeError)
		return domain.Account{}, ErrAccountStoreFailure.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"username":   account.Username,
		"account_id": string(account.ID),
		"action":     "create_success",
	}).Info("account created")
	recordCreation(outcomeCreated)

	return account, nil
}

// Fields that already failed a format rule are not looked up.
func (s *AccountService) checkUniqueness(ctx context.Context, input domain.CreateInput, violations domain.ValidationErrors) (domain.ValidationErrors, error) {
	var out domain.ValidationErrors

	if !violations.HasField(domain.FieldUsername) {
		taken, err := s.uniqueness.IsUsernameTaken(ctx, input.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			out = append(out, domain.ValidationError{Field: domain.FieldUsername, Rule: domain.RuleAlreadyTaken})
		}
	}

	if !violations.HasField(domain.FieldEmail) {
		taken, err := s.uniqueness.IsEmailTaken(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			out = append(out, domain.ValidationError{Field: domain.FieldEmail, Rule: domain.RuleAlreadyTaken})
		}
	}

	return out, nil
}

// ToggleAdmin flips the admin flag and persists it. The stored digest is
// never touched, so no password is needed.
func (s *AccountService) ToggleAdmin(ctx context.Context, account domain.Account) (domain.Account, error) {
	if account.ID == "" {
		return domain.Account{}, ErrAccountNotPersisted
	}

	updated := account.WithAdmin(!account.IsAdmin, s.clock.Now())
	if err := s.repo.Update(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"account_id": string(account.ID),
				"action":     "toggle_admin_not_found",
			}).Warn("toggle admin failed: account not found")
			return domain.Account{}, err
		}
		s.log.WithFields(ctx, logger.Fields{
			"account_id": string(account.ID),
			"action":     "toggle_admin_failed",
		}).Errorf("toggle admin failed: %v", err)
		return domain.Account{}, ErrAccountStoreFailure.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"account_id": string(updated.ID),
		"is_admin":   updated.IsAdmin,
		"action":     "toggle_admin_success",
	}).Info("admin flag toggled")
	recordAdminToggle(updated.IsAdmin)

	return updated, nil
}

func (s *AccountService) Get(ctx context.Context, id domain.ID) (domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domain.Account{}, err
		}
		return domain.Account{}, ErrAccountStoreFailure.WithCause(err)
	}
	return account, nil
}

// FindByUsername resolves an account by its exact username.
func (s *AccountService) FindByUsername(ctx context.Context, username string) (domain.Account, error) {
	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domain.Account{}, err
		}
		return domain.Account{}, ErrAccountStoreFailure.WithCause(err)
	}
	return account, nil
}
