// Package config loads HeadParameters and Environment from file and
// environment variables via viper, independent of any CLI front end
// (grounded on the teacher's InitConfig/MakeOrGetConfig idiom).
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/sevanspowell/hydra-poc/crypto"
	"github.com/sevanspowell/hydra-poc/head"
	"github.com/sevanspowell/hydra-poc/ids"
)

// Defaults registers the settings every head needs before a config file or
// environment overrides are applied.
func Defaults(v *viper.Viper) {
	v.SetDefault("contestationPeriod", "60s")
	v.SetDefault("configType", "yaml")
}

// New returns a Viper instance with defaults registered, reading from the
// given config file path if non-empty and overriding from environment
// variables prefixed HYDRA_POC (e.g. HYDRA_POC_SELF).
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()
	Defaults(v)
	v.SetEnvPrefix("hydra_poc")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", configFile, err)
		}
	}
	return v, nil
}

// LoadParameters builds HeadParameters from v. "parties" must be a list of
// hex-encoded verification keys; "contestationPeriod" a duration string.
func LoadParameters(v *viper.Viper) (head.HeadParameters, error) {
	cp, err := time.ParseDuration(v.GetString("contestationPeriod"))
	if err != nil {
		return head.HeadParameters{}, fmt.Errorf("config: contestationPeriod: %w", err)
	}

	raw := v.GetStringSlice("parties")
	parties := make([]ids.Party, 0, len(raw))
	for _, hexKey := range raw {
		p, err := decodeParty(hexKey)
		if err != nil {
			return head.HeadParameters{}, fmt.Errorf("config: parties: %w", err)
		}
		parties = append(parties, p)
	}

	return head.HeadParameters{ContestationPeriod: cp, Parties: parties}, nil
}

// LoadEnvironment builds this node's Environment from v: its own identity
// ("self", hex-encoded verification key), signing key ("signingKey",
// hex-encoded) and peers ("parties", minus self).
func LoadEnvironment(v *viper.Viper) (head.Environment, error) {
	self, err := decodeParty(v.GetString("self"))
	if err != nil {
		return head.Environment{}, fmt.Errorf("config: self: %w", err)
	}

	skHex := v.GetString("signingKey")
	sk, err := decodeHex(skHex)
	if err != nil {
		return head.Environment{}, fmt.Errorf("config: signingKey: %w", err)
	}

	params, err := LoadParameters(v)
	if err != nil {
		return head.Environment{}, err
	}
	others := ids.NewPartySet(params.Parties...)
	others.Remove(self)

	return head.Environment{
		Self:       self,
		SigningKey: crypto.SigningKey(sk),
		Others:     others,
	}, nil
}

func decodeParty(hexKey string) (ids.Party, error) {
	b, err := decodeHex(hexKey)
	if err != nil {
		return ids.Empty, err
	}
	return ids.PartyFromBytes(b), nil
}
