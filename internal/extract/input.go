package extract

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/ohmyshower/order-cli/internal/model"
)

// LoadEmails reads a JSON array of emails produced by the mailbox fetcher.
// Order in the file is processing order.
func LoadEmails(path string) ([]model.Email, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: read %s", path)
	}

	var emails []model.Email
	if err := json.Unmarshal(data, &emails); err != nil {
		return nil, eris.Wrapf(err, "extract: parse %s", path)
	}
	if len(emails) == 0 {
		return nil, eris.Errorf("extract: %s contains no emails", path)
	}
	for i, em := range emails {
		if em.MessageID == "" {
			return nil, eris.Errorf("extract: email %d has no message_id", i+1)
		}
	}
	return emails, nil
}
