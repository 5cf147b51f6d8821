package util

import (
	"github.com/denisbrodbeck/machineid"
)

// GetMachineID returns a stable identifier for the host machine. Token
// signing keys are salted with it so a leaked config file alone cannot
// forge tokens for another deployment.
func GetMachineID() string {
	id, err := machineid.ProtectedID("cloud-vault-service")
	if err != nil {
		return "cloud-vault-service"
	}
	return id
}
