package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"bank-ledger/pkg/ledger"
	"bank-ledger/pkg/logging"
	"bank-ledger/pkg/metrics"
	"bank-ledger/pkg/money"
)

// LedgerService is the boundary facade invoked by the transport layer. It
// parses and validates raw inputs, calls into the ledger core, and maps
// domain failures to the status taxonomy. It holds no state of its own.
type LedgerService struct {
	store   *ledger.AccountStore
	txlog   *ledger.TransactionLog
	engine  *ledger.TransferEngine
	logger  *logging.Logger
	metrics metrics.Collector
}

// New creates the facade over a store and transaction log. A nil logger or
// collector falls back to the no-op implementation.
func New(store *ledger.AccountStore, txlog *ledger.TransactionLog, logger *logging.Logger, collector metrics.Collector) *LedgerService {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}
	return &LedgerService{
		store:   store,
		txlog:   txlog,
		engine:  ledger.NewTransferEngine(store, txlog),
		logger:  logger.Named("service"),
		metrics: collector,
	}
}

// BalanceResponse is the result of GetBalance and UpdateBalance.
type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance string `json:"balance"`
	Message string `json:"message"`
}

// TransferResponse is the result of InitiateTransfer.
type TransferResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	FromUserID     string `json:"from_user_id"`
	FromNewBalance string `json:"from_new_balance"`
	ToUserID       string `json:"to_user_id"`
	ToNewBalance   string `json:"to_new_balance"`
}

// TransactionRecord is one history entry, amounts formatted for the caller.
type TransactionRecord struct {
	TransactionID string    `json:"transaction_id"`
	FromUserID    string    `json:"from_user_id"`
	ToUserID      string    `json:"to_user_id"`
	Amount        string    `json:"amount"`
	Description   string    `json:"description"`
	Timestamp     time.Time `json:"timestamp"`
}

// HistoryResponse is the result of GetTransactionHistory.
type HistoryResponse struct {
	UserID       string              `json:"user_id"`
	Transactions []TransactionRecord `json:"transactions"`
}

// GetBalance returns the current balance of an account.
func (s *LedgerService) GetBalance(ctx context.Context, userID string) (resp *BalanceResponse, err error) {
	defer s.observe(metrics.OpGetBalance, time.Now(), &err)

	if userID == "" {
		return nil, Errorf(InvalidArgument, "User id is required")
	}

	balance, lookupErr := s.store.Balance(userID)
	if lookupErr != nil {
		return nil, Errorf(NotFound, "User '%s' not found", userID)
	}

	return &BalanceResponse{
		UserID:  userID,
		Balance: balance.String(),
		Message: "Balance retrieved successfully",
	}, nil
}

// UpdateBalance applies a signed delta to an account: positive deposits,
// negative withdraws. The raw amount is a decimal string; anything that does
// not parse is InvalidArgument before the core is touched.
func (s *LedgerService) UpdateBalance(ctx context.Context, userID, amount string) (resp *BalanceResponse, err error) {
	defer s.observe(metrics.OpUpdateBalance, time.Now(), &err)

	if userID == "" {
		return nil, Errorf(InvalidArgument, "User id is required")
	}
	delta, parseErr := money.Parse(amount)
	if parseErr != nil {
		return nil, Errorf(InvalidArgument, "Invalid amount '%s'", amount)
	}

	newBalance, applyErr := s.store.ApplyDelta(userID, delta)
	switch {
	case ledger.IsNotFound(applyErr):
		return nil, Errorf(NotFound, "User '%s' not found", userID)
	case ledger.IsInsufficientFunds(applyErr):
		return nil, Errorf(InsufficientFunds, "Insufficient funds for this update")
	case applyErr != nil:
		return nil, Errorf(Internal, "balance update failed")
	}

	s.logger.Debug("balance updated",
		zap.String("user_id", userID),
		zap.String("delta", delta.String()),
		zap.String("balance", newBalance.String()))

	return &BalanceResponse{
		UserID:  userID,
		Balance: newBalance.String(),
		Message: "Balance updated successfully",
	}, nil
}

// InitiateTransfer moves money from one account to another. Validation
// order: amount positive, then source exists, then destination exists, then
// funds. A rejected transfer leaves balances and history untouched.
func (s *LedgerService) InitiateTransfer(ctx context.Context, fromID, toID, amount, description string) (resp *TransferResponse, err error) {
	defer s.observe(metrics.OpTransfer, time.Now(), &err)

	if fromID == "" || toID == "" {
		return nil, Errorf(InvalidArgument, "User id is required")
	}
	value, parseErr := money.Parse(amount)
	if parseErr != nil {
		return nil, Errorf(InvalidArgument, "Invalid amount '%s'", amount)
	}
	if value <= 0 {
		return nil, Errorf(InvalidArgument, "Amount must be positive")
	}
	if !s.store.Exists(fromID) {
		return nil, Errorf(NotFound, "Source user '%s' not found", fromID)
	}
	if !s.store.Exists(toID) {
		return nil, Errorf(NotFound, "Destination user '%s' not found", toID)
	}

	result, transferErr := s.engine.Transfer(fromID, toID, value, description)
	switch {
	case ledger.IsInsufficientFunds(transferErr):
		return nil, Errorf(InsufficientFunds, "Insufficient funds for transfer")
	case transferErr != nil:
		// Covers the committed-but-unlogged case: balances have moved but
		// the history record is missing. Never swallow this.
		s.logger.Error("transfer failed after validation",
			zap.String("from", fromID),
			zap.String("to", toID),
			zap.String("amount", value.String()),
			zap.String("class", ledger.ClassifyError(transferErr)),
			zap.Error(transferErr))
		return nil, Errorf(Internal, "transfer failed: %v", transferErr)
	}

	s.metrics.RecordTransfer(int64(value))
	s.metrics.RecordLogSize(s.txlog.Len())

	s.logger.Info("transfer completed",
		zap.String("transaction_id", result.Tx.ID),
		zap.String("from", fromID),
		zap.String("to", toID),
		zap.String("amount", value.String()))

	return &TransferResponse{
		Success:        true,
		Message:        "Transfer completed successfully",
		FromUserID:     fromID,
		FromNewBalance: result.FromBalance.String(),
		ToUserID:       toID,
		ToNewBalance:   result.ToBalance.String(),
	}, nil
}

// GetTransactionHistory returns, in append order, every transaction where
// the account is source or destination.
func (s *LedgerService) GetTransactionHistory(ctx context.Context, userID string) (resp *HistoryResponse, err error) {
	defer s.observe(metrics.OpHistory, time.Now(), &err)

	if userID == "" {
		return nil, Errorf(InvalidArgument, "User id is required")
	}
	if !s.store.Exists(userID) {
		return nil, Errorf(NotFound, "User '%s' not found", userID)
	}

	txs := s.txlog.ByParticipant(userID)
	records := make([]TransactionRecord, 0, len(txs))
	for _, tx := range txs {
		records = append(records, TransactionRecord{
			TransactionID: tx.ID,
			FromUserID:    tx.From,
			ToUserID:      tx.To,
			Amount:        tx.Amount.String(),
			Description:   tx.Description,
			Timestamp:     tx.Timestamp,
		})
	}

	return &HistoryResponse{UserID: userID, Transactions: records}, nil
}

// observe records the request outcome. Meant to run deferred with the
// operation start time.
func (s *LedgerService) observe(op string, start time.Time, err *error) {
	s.metrics.RecordRequest(op, CodeOf(*err).String(), time.Since(start))
}
