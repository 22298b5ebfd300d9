package domain

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleCustomer }

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

var (
	MockAdmin    = User{ID: "admin-1", Name: "Store Manager", Email: "admin@shopper.com", Role: RoleAdmin}
	MockCustomer = User{ID: "cust-1", Name: "John Doe", Email: "john@gmail.com", Role: RoleCustomer}
)
