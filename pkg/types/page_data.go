package types

type NavbarData struct {
	IsAuthenticated bool
	UserEmail       string
	IsAdmin         bool
}

type NavbarDataSetter interface {
	SetNavbarData(data NavbarData)
}

type BasePageData struct {
	Title  string
	Navbar NavbarData
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
}

type LoginPageData struct {
	BasePageData
	Message string
	Error   string
	Email   string
}

type RegisterPageData struct {
	BasePageData
	Email       string
	Error       string
	FieldErrors map[string]string
}

type ConfirmRegisterPageData struct {
	BasePageData
	Email   string
	Error   string
	Message string
}

// BillRow is one display-ready listing entry: the raw record plus the
// formatted date and status label the view shows.
type BillRow struct {
	Bill   *Bill
	Date   string
	Status string
}

type BillsPageData struct {
	BasePageData
	Bills []BillRow
	Error string
}

type NewBillPageData struct {
	BasePageData
	ExpenseTypes []string
	Error        string
	FileName     string
}

type DashboardPageData struct {
	BasePageData
	Bills []BillRow
	Error string
}
