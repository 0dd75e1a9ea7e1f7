package services

import "errors"

// ErrNotImplemented is returned for screens present in navigation that have
// no backing data.
var ErrNotImplemented = errors.New("module not implemented")

// Module is one entry of the navigation shell.
type Module struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Path        string `json:"path"`
	Implemented bool   `json:"implemented"`
}

var modules = []Module{
	{Key: "dashboard", Title: "Dashboard", Path: "/", Implemented: true},
	{Key: "patients", Title: "Patients", Path: "/patients", Implemented: true},
	{Key: "appointments", Title: "Appointments", Path: "/appointments", Implemented: true},
	{Key: "staff", Title: "Staff", Path: "/staff", Implemented: true},
	{Key: "wards", Title: "Wards", Path: "/wards", Implemented: true},
	{Key: "beds", Title: "Beds", Path: "/beds", Implemented: true},
	{Key: "bed-assignments", Title: "Bed Assignments", Path: "/bed-assignments", Implemented: true},
	{Key: "laboratory", Title: "Laboratory", Path: "/laboratory", Implemented: true},
	{Key: "medications", Title: "Medications", Path: "/medications", Implemented: true},
	{Key: "billing", Title: "Billing", Path: "/billing"},
	{Key: "inventory", Title: "Inventory", Path: "/inventory"},
	{Key: "emergency", Title: "Emergency", Path: "/emergency"},
	{Key: "insurance", Title: "Insurance", Path: "/insurance"},
	{Key: "medical-records", Title: "Medical Records", Path: "/medical-records"},
	{Key: "pharmacy", Title: "Pharmacy", Path: "/pharmacy"},
	{Key: "telemedicine", Title: "Telemedicine", Path: "/telemedicine"},
	{Key: "support", Title: "Support", Path: "/support"},
}

// Modules lists the navigation entries in display order.
func Modules() []Module {
	out := make([]Module, len(modules))
	copy(out, modules)
	return out
}

// LookupModule finds a module by key. Known keys without data return
// ErrNotImplemented alongside the module.
func LookupModule(key string) (Module, error) {
	for _, m := range modules {
		if m.Key == key {
			if !m.Implemented {
				return m, ErrNotImplemented
			}
			return m, nil
		}
	}
	return Module{}, ErrNotFound
}
