package auth

import (
	"Dishcovery-Backend/entities"
	"Dishcovery-Backend/internal/utils"
	"strings"
)

// Policy names the system account that can never lose admin rights or be
// deleted.
type Policy struct {
	RootAdminEmail string
}

func NewPolicyFromConfig() Policy {
	return Policy{RootAdminEmail: utils.GetConfig("ROOT_ADMIN_EMAIL")}
}

func (p Policy) IsRootAdminEmail(email string) bool {
	root := strings.TrimSpace(p.RootAdminEmail)
	if root == "" {
		return false
	}
	return strings.EqualFold(root, strings.TrimSpace(email))
}

func (p Policy) IsRootAdmin(user *entities.User) bool {
	return user != nil && p.IsRootAdminEmail(user.Email)
}
