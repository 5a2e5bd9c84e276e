package pangfish

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "nil config",
			config:  nil,
			wantErr: true,
		},
		{
			name:    "zero-value config fills in defaults",
			config:  &Config{},
			wantErr: false,
		},
		{
			name:    "b below minimum",
			config:  &Config{B: 1},
			wantErr: true,
		},
		{
			name:    "valid explicit config",
			config:  &Config{RSAKeySize: 1024, B: 2},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("Config.Validate() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Config.Validate() unexpected error = %v", err)
			}
		})
	}

	t.Run("defaults applied", func(t *testing.T) {
		c := &Config{}
		if err := c.Validate(); err != nil {
			t.Fatalf("Validate() unexpected error = %v", err)
		}
		if c.RSAKeySize != DefaultRSAKeySize {
			t.Errorf("RSAKeySize = %d, want default %d", c.RSAKeySize, DefaultRSAKeySize)
		}
		if c.B != DefaultB {
			t.Errorf("B = %d, want default %d", c.B, DefaultB)
		}
	})
}

func TestArgon2idParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Argon2idParams
		wantErr bool
	}{
		{"zero value", Argon2idParams{}, false},
		{"valid", Argon2idParams{Memory: 64 * 1024, Iterations: 3, Parallelism: 4, SaltSize: 32, KeySize: 32}, false},
		{"missing parallelism", Argon2idParams{Memory: 64 * 1024, Iterations: 3}, true},
		{"negative salt size", Argon2idParams{Parallelism: 4, SaltSize: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPBKDF2ParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  PBKDF2Params
		wantErr bool
	}{
		{"zero value", PBKDF2Params{}, false},
		{"valid", PBKDF2Params{Iterations: 100000, SaltSize: 32, KeySize: 32}, false},
		{"iterations too low", PBKDF2Params{Iterations: 100}, true},
		{"negative key size", PBKDF2Params{KeySize: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
