package payment

import (
	"brewstock/domain"
	"brewstock/internal/utils"
	"context"
	"crypto/sha512"
	"encoding/hex"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type (
	PaymentService interface {
		CreateTransaction(ctx context.Context, req domain.PaymentRequest) (domain.PaymentResponse, error)
		VerifyNotification(notification domain.PaymentNotification) error
	}

	paymentService struct {
		snapClient snap.Client
		serverKey  string
	}
)

func NewPaymentService() PaymentService {
	serverKey := utils.GetConfig("SERVER_KEY")
	env := midtrans.Sandbox
	if utils.GetConfig("IsProd") == "true" {
		env = midtrans.Production
	}

	var client snap.Client
	client.New(serverKey, env)

	return &paymentService{
		snapClient: client,
		serverKey:  serverKey,
	}
}

func (s *paymentService) CreateTransaction(_ context.Context, req domain.PaymentRequest) (domain.PaymentResponse, error) {
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.AmountCents,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: req.Email,
		},
	}

	resp, err := s.snapClient.CreateTransaction(snapReq)
	if err != nil {
		return domain.PaymentResponse{}, domain.ErrPaymentFailed
	}

	return domain.PaymentResponse{
		Token:      resp.Token,
		InvoiceURL: resp.RedirectURL,
	}, nil
}

// VerifyNotification checks the provider's signature: sha512 over order id,
// status code, gross amount and the merchant server key.
func (s *paymentService) VerifyNotification(notification domain.PaymentNotification) error {
	payload := notification.OrderID + notification.StatusCode + notification.GrossAmount + s.serverKey
	digest := sha512.Sum512([]byte(payload))
	if hex.EncodeToString(digest[:]) != notification.SignatureKey {
		return domain.ErrInvalidSignature
	}
	return nil
}
