package config

// AccountsConfig holds account-policy settings. BootstrapActor is the only
// identity allowed to mint super_admin users.
type AccountsConfig struct {
	BootstrapActor string `yaml:"bootstrap_actor" env:"BOOTSTRAP_ACTOR" env-default:"admin"`
	BcryptCost     int    `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
}
