package create_booking

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// generateConfirmationCode генерирует случайный код подтверждения
// из алфавита без визуально похожих символов
func generateConfirmationCode() (string, error) {
	alphabet := domain.ConfirmationCodeAlphabet
	code := make([]byte, domain.ConfirmationCodeLength)

	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrCodeGeneration, err)
		}
		code[i] = alphabet[n.Int64()]
	}

	return string(code), nil
}
