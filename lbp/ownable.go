package lbp

import (
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// OwnerConfigParams carries everything initialize_owner_config takes:
// the owner, the global fee rates, and the initial fee routing.
// FeeRecipients and FeePercentages are parallel slices.
type OwnerConfigParams struct {
	Owner            solanago.PublicKey
	SwapFeeRecipient solanago.PublicKey
	FeeRecipients    []solanago.PublicKey
	FeePercentages   []uint16
	PlatformFee      uint16
	ReferralFee      uint16
	SwapFee          uint16
}

// InitializeOwnerConfig creates the OwnerConfig and Treasury singletons.
// Only the program upgrade authority may call it, and only once.
func (e *Engine) InitializeOwnerConfig(signer solanago.PublicKey, params OwnerConfigParams) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if signer != e.authority {
		return ErrUnauthorized
	}
	if e.store.has(e.configAddress) {
		return ErrConfigInitialized
	}
	if params.PlatformFee > MaxFeeBips || params.ReferralFee > MaxFeeBips || params.SwapFee > MaxFeeBips {
		return ErrMaxFeeExceeded
	}
	recipients, err := buildFeeRecipients(params.FeeRecipients, params.FeePercentages)
	if err != nil {
		return err
	}

	config := OwnerConfig{
		Owner:       params.Owner,
		Treasury:    e.treasuryAddress,
		PlatformFee: params.PlatformFee,
		ReferralFee: params.ReferralFee,
		SwapFee:     params.SwapFee,
		Bump:        e.configBump,
	}
	treasury := Treasury{
		SwapFeeRecipient: params.SwapFeeRecipient,
		FeeRecipients:    recipients,
		Bump:             e.treasuryBump,
	}
	if err := e.store.set(e.configAddress, &config); err != nil {
		return err
	}
	if err := e.store.set(e.treasuryAddress, &treasury); err != nil {
		return err
	}

	e.logger.Info("owner config initialized",
		zap.Stringer("owner", params.Owner),
		zap.Uint16("platform_fee", params.PlatformFee),
		zap.Uint16("referral_fee", params.ReferralFee),
		zap.Uint16("swap_fee", params.SwapFee),
	)
	return nil
}

// NominateNewOwner records a successor. Only the current owner may call;
// the nomination takes effect when the successor accepts.
func (e *Engine) NominateNewOwner(signer, newOwner solanago.PublicKey) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	config, err := e.loadConfig()
	if err != nil {
		return err
	}
	if config.Owner != signer {
		return ErrUnauthorized
	}
	config.PendingOwner = &newOwner
	if err := e.store.set(e.configAddress, config); err != nil {
		return err
	}
	e.emit(OwnerNominatedEvent{PendingOwner: newOwner})
	return nil
}

// AcceptNewOwner completes the ownership transfer. Only the pending owner
// may call.
func (e *Engine) AcceptNewOwner(signer solanago.PublicKey) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	config, err := e.loadConfig()
	if err != nil {
		return err
	}
	if config.PendingOwner == nil || *config.PendingOwner != signer {
		return ErrUnauthorized
	}
	config.Owner = signer
	config.PendingOwner = nil
	if err := e.store.set(e.configAddress, config); err != nil {
		return err
	}
	e.emit(OwnerAcceptedEvent{Owner: signer})
	return nil
}

// SetFees updates any of the global fee rates. Nil means keep the current
// value.
func (e *Engine) SetFees(signer solanago.PublicKey, platformFee, referralFee, swapFee *uint16) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	config, err := e.loadConfig()
	if err != nil {
		return err
	}
	if config.Owner != signer {
		return ErrUnauthorized
	}
	for _, fee := range []*uint16{platformFee, referralFee, swapFee} {
		if fee != nil && *fee > MaxFeeBips {
			return ErrMaxFeeExceeded
		}
	}
	if platformFee != nil {
		config.PlatformFee = *platformFee
	}
	if referralFee != nil {
		config.ReferralFee = *referralFee
	}
	if swapFee != nil {
		config.SwapFee = *swapFee
	}
	if err := e.store.set(e.configAddress, config); err != nil {
		return err
	}
	e.emit(FeeSetEvent{
		PlatformFee: config.PlatformFee,
		ReferralFee: config.ReferralFee,
		SwapFee:     config.SwapFee,
	})
	return nil
}

// SetTreasuryFeeRecipients replaces the fee routing. Nil swapFeeRecipient
// keeps the current one.
func (e *Engine) SetTreasuryFeeRecipients(signer solanago.PublicKey, swapFeeRecipient *solanago.PublicKey, feeRecipients []solanago.PublicKey, feePercentages []uint16) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	config, err := e.loadConfig()
	if err != nil {
		return err
	}
	if config.Owner != signer {
		return ErrUnauthorized
	}
	recipients, err := buildFeeRecipients(feeRecipients, feePercentages)
	if err != nil {
		return err
	}
	treasury, err := e.loadTreasury()
	if err != nil {
		return err
	}
	if swapFeeRecipient != nil {
		treasury.SwapFeeRecipient = *swapFeeRecipient
	}
	treasury.FeeRecipients = recipients
	if err := e.store.set(e.treasuryAddress, treasury); err != nil {
		return err
	}
	e.emit(TreasuryFeeRecipientsSetEvent{
		SwapFeeRecipient: treasury.SwapFeeRecipient,
		FeeRecipients:    recipients,
	})
	return nil
}

func buildFeeRecipients(users []solanago.PublicKey, percentages []uint16) ([]FeeMapping, error) {
	if len(users) != len(percentages) {
		return nil, ErrInvalidFeeRecipients
	}
	var total uint32
	recipients := make([]FeeMapping, len(users))
	for i, user := range users {
		total += uint32(percentages[i])
		recipients[i] = FeeMapping{User: user, Percentage: percentages[i]}
	}
	if total > uint32(MaxFeeBips) {
		return nil, ErrMaxFeeExceeded
	}
	return recipients, nil
}
