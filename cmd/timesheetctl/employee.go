package main

import (
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/spf13/cobra"
)

func (c *cli) employeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage the employee registry",
	}
	cmd.AddCommand(c.employeeCreateCmd())
	cmd.AddCommand(c.employeeSuspensionCmd("suspend", "Block new sessions, work entries and leave"))
	cmd.AddCommand(c.employeeSuspensionCmd("reactivate", "Lift a suspension"))
	return cmd
}

func (c *cli) employeeCreateCmd() *cobra.Command {
	var (
		req                             employee.CreateEmployeeRequest
		mobile, designation, department string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := c.servicesFor(cmd.Context())
			if err != nil {
				return err
			}

			req.Mobile = optional(mobile)
			req.Designation = optional(designation)
			req.Department = optional(department)
			req.IsPrivileged = true

			created, err := services.Employee.CreateEmployee(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), created)
		},
	}

	cmd.Flags().StringVar(&req.EmpNo, "emp-no", "", "Employee number (unique)")
	cmd.Flags().StringVar(&req.FullName, "name", "", "Full name")
	cmd.Flags().StringVar(&req.Category, "category", "", "Work category: A, B or C")
	cmd.Flags().StringVar(&mobile, "mobile", "", "Mobile number")
	cmd.Flags().StringVar(&designation, "designation", "", "Designation")
	cmd.Flags().StringVar(&department, "department", "", "Department")
	_ = cmd.MarkFlagRequired("emp-no")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func (c *cli) employeeSuspensionCmd(use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <employee-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := c.servicesFor(cmd.Context())
			if err != nil {
				return err
			}

			req := employee.SuspensionRequest{EmployeeID: args[0], IsPrivileged: true}
			var result employee.EmployeeResponse
			if use == "suspend" {
				result, err = services.Employee.SuspendEmployee(cmd.Context(), req)
			} else {
				result, err = services.Employee.ReactivateEmployee(cmd.Context(), req)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
