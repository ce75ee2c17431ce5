package payroll

// =============================================================================
// HOURLY PAY
// =============================================================================

// HourlyPay is the validated rate and hours of an hourly employee.
type HourlyPay struct {
	hourlyRate  int
	hoursWorked int
}

func (p *HourlyPay) init(f Fields, e *Employee) {
	e.track(f, FieldRate, p.SetHourlyRate(f.Get(FieldRate)))
	e.track(f, FieldHours, p.SetHoursWorked(f.Get(FieldHours)))
}

func (p *HourlyPay) HourlyRate() int  { return p.hourlyRate }
func (p *HourlyPay) HoursWorked() int { return p.hoursWorked }

// SetHourlyRate stores a rate in [0, 20] or DefaultHourlyRate.
func (p *HourlyPay) SetHourlyRate(raw any) bool {
	var defaulted bool
	p.hourlyRate, defaulted = ValidHourlyRate(raw)
	return defaulted
}

// SetHoursWorked stores hours in [0, 40] or DefaultHours.
func (p *HourlyPay) SetHoursWorked(raw any) bool {
	var defaulted bool
	p.hoursWorked, defaulted = ValidHoursWorked(raw)
	return defaulted
}

// GrossPay computes rate*hours for the given arguments, not the stored
// fields. It is 0 when either argument is outside its valid range.
func (p *HourlyPay) GrossPay(rate, hours any) int {
	return GrossPay(rate, hours)
}

// WeeklyPay is the gross pay of the stored rate and hours.
func (p *HourlyPay) WeeklyPay() int {
	return GrossPay(p.hourlyRate, p.hoursWorked)
}

// GrossPay returns rate*hours when both validate independently, else 0.
func GrossPay(rate, hours any) int {
	r, rateDefaulted := ValidHourlyRate(rate)
	h, hoursDefaulted := ValidHoursWorked(hours)
	if rateDefaulted || hoursDefaulted {
		return 0
	}
	return r * h
}

// =============================================================================
// PRODUCTION WORKER
// =============================================================================

// ProductionWorker is an hourly employee assigned to a shift.
type ProductionWorker struct {
	Employee
	ShiftAssignment
	HourlyPay
}

// NewProductionWorker builds a worker from the name, number, shift, rate
// and hours fields of f.
func NewProductionWorker(f Fields) *ProductionWorker {
	w := &ProductionWorker{}
	w.Employee.init(f)
	w.ShiftAssignment.init(f, &w.Employee)
	w.HourlyPay.init(f, &w.Employee)
	return w
}
