package holiday

// DefaultEmployeeID is used when neither the caller nor its token names one.
const DefaultEmployeeID int64 = 1001

// Request selects whose holidays to list.
type Request struct {
	EmployeeID int64 `form:"employeeId" json:"employeeId"`
}

// Response lists upcoming holiday dates in ascending order.
type Response struct {
	EmployeeID int64    `json:"employeeId"`
	From       string   `json:"from"`
	Holidays   []string `json:"holidays"`
}
