package identity

// Role represents the functional role of a user
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleShopManager   Role = "ShopManager"
	RoleCashier       Role = "Cashier"
)

// IsValid checks if the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdministrator, RoleShopManager, RoleCashier:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// RoleSet is the set of roles allowed to perform an operation
type RoleSet []Role

// Contains reports whether the set includes the given role
func (s RoleSet) Contains(role Role) bool {
	for _, r := range s {
		if r == role {
			return true
		}
	}
	return false
}

// Role sets per operation group. Management roles cover catalog and ledger
// mutation; every authenticated role can run front-desk transactions.
var (
	CatalogWrite      = RoleSet{RoleAdministrator, RoleShopManager}
	CatalogRead       = RoleSet{RoleAdministrator, RoleShopManager, RoleCashier}
	LedgerAccess      = RoleSet{RoleAdministrator, RoleShopManager}
	TransactionAccess = RoleSet{RoleAdministrator, RoleShopManager, RoleCashier}
	UserAdmin         = RoleSet{RoleAdministrator}
	DirectoryAccess   = RoleSet{RoleAdministrator, RoleShopManager, RoleCashier}
)
