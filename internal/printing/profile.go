package printing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is the shop letterhead and footer printed on every invoice.
type Profile struct {
	Name        string   `yaml:"name"`
	Address     []string `yaml:"address"`
	Phone       string   `yaml:"phone"`
	ThankYou    string   `yaml:"thank_you"`
	PaymentNote string   `yaml:"payment_note"`
	Bank        []string `yaml:"bank"`
}

func DefaultProfile() Profile {
	return Profile{
		Name: "Kaos21 Pekanbaru",
		Address: []string{
			"Jl. Nenas No.12 C, Kel. Jadirejo, Kec. Sukajadi",
			"Pekanbaru, Riau",
		},
		Phone:       "0877-7734-7550",
		ThankYou:    "Terima kasih atas kepercayaan Anda berbelanja di Kaos21 Pekanbaru.",
		PaymentNote: "Pembayaran dapat dilakukan melalui transfer ke:",
	}
}

// LoadProfile reads a YAML profile. Fields missing from the file keep their
// default values; an empty path returns the default profile.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading company profile: %w", err)
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing company profile: %w", err)
	}

	return p, nil
}
