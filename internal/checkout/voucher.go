package checkout

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MarcoPoloResearchLab/lovehub/internal/catalog"
	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultVoucherTTL = 2 * time.Hour
	// DefaultIssuer names the voucher issuer when none is configured.
	DefaultIssuer = "lovehub-checkout"
	// DefaultAudience names the voucher audience when none is configured.
	DefaultAudience = "lovehub-proposals"
)

var (
	ErrMissingSigningSecret = errors.New("voucher: signing secret required")
	ErrMissingOrderID       = errors.New("voucher: order id required")
	ErrMissingVoucher       = errors.New("voucher: token required")
	ErrInvalidVoucher       = errors.New("voucher: invalid token")
	ErrExpiredVoucher       = errors.New("voucher: token expired")
)

// VoucherClaims is the payload of a plan voucher.
type VoucherClaims struct {
	Plan   catalog.Plan `json:"plan"`
	Method Method       `json:"method"`
	jwt.RegisteredClaims
}

// VoucherConfig configures both voucher issuance and validation.
type VoucherConfig struct {
	SigningSecret []byte
	Issuer        string
	Audience      string
	TTL           time.Duration
	Clock         func() time.Time
}

func (cfg VoucherConfig) normalized() (VoucherConfig, error) {
	if len(cfg.SigningSecret) == 0 {
		return VoucherConfig{}, ErrMissingSigningSecret
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		issuer = DefaultIssuer
	}
	audience := strings.TrimSpace(cfg.Audience)
	if audience == "" {
		audience = DefaultAudience
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultVoucherTTL
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return VoucherConfig{
		SigningSecret: append([]byte(nil), cfg.SigningSecret...),
		Issuer:        issuer,
		Audience:      audience,
		TTL:           ttl,
		Clock:         clock,
	}, nil
}

// VoucherIssuer signs plan vouchers for completed orders.
type VoucherIssuer struct {
	config VoucherConfig
}

// NewVoucherIssuer constructs an issuer, defaulting issuer, audience and TTL.
func NewVoucherIssuer(cfg VoucherConfig) (*VoucherIssuer, error) {
	normalized, err := cfg.normalized()
	if err != nil {
		return nil, err
	}
	return &VoucherIssuer{config: normalized}, nil
}

// Issue produces a signed voucher for the order and its lifetime in seconds.
func (i *VoucherIssuer) Issue(orderID string, plan catalog.Plan, method Method) (string, int64, error) {
	if strings.TrimSpace(orderID) == "" {
		return "", 0, ErrMissingOrderID
	}
	if !plan.Valid() {
		return "", 0, catalog.ErrUnknownPlan
	}

	now := i.config.Clock().UTC()
	expiresAt := now.Add(i.config.TTL).UTC()
	claims := VoucherClaims{
		Plan:   plan,
		Method: method,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        orderID,
			Subject:   orderID,
			Issuer:    i.config.Issuer,
			Audience:  []string{i.config.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.config.SigningSecret)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(expiresAt.Sub(now).Seconds()), nil
}

// VoucherValidator verifies plan vouchers presented when a proposal is created.
type VoucherValidator struct {
	config VoucherConfig
}

// NewVoucherValidator constructs a validator sharing the issuer's secret and naming.
func NewVoucherValidator(cfg VoucherConfig) (*VoucherValidator, error) {
	normalized, err := cfg.normalized()
	if err != nil {
		return nil, err
	}
	return &VoucherValidator{config: normalized}, nil
}

// Validate returns the plan the voucher was purchased for.
func (v *VoucherValidator) Validate(tokenString string) (catalog.Plan, error) {
	claims, err := v.ValidateClaims(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Plan, nil
}

// ValidateClaims verifies signature, issuer, audience and expiry and returns the full claims.
func (v *VoucherValidator) ValidateClaims(tokenString string) (VoucherClaims, error) {
	token := strings.TrimSpace(tokenString)
	if token == "" {
		return VoucherClaims{}, ErrMissingVoucher
	}

	claims := &VoucherClaims{}
	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("%w: unexpected signing algorithm %s", ErrInvalidVoucher, t.Method.Alg())
			}
			return v.config.SigningSecret, nil
		},
		jwt.WithIssuer(v.config.Issuer),
		jwt.WithAudience(v.config.Audience),
		jwt.WithTimeFunc(v.config.Clock),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return VoucherClaims{}, ErrExpiredVoucher
		}
		return VoucherClaims{}, fmt.Errorf("%w: %v", ErrInvalidVoucher, err)
	}
	if parsed == nil || !parsed.Valid {
		return VoucherClaims{}, ErrInvalidVoucher
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return VoucherClaims{}, fmt.Errorf("%w: %v", ErrInvalidVoucher, ErrMissingOrderID)
	}
	if !claims.Plan.Valid() {
		return VoucherClaims{}, fmt.Errorf("%w: %v", ErrInvalidVoucher, catalog.ErrUnknownPlan)
	}
	return *claims, nil
}
