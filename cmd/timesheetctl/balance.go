package main

import (
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/spf13/cobra"
)

func (c *cli) balanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Inspect and adjust leave allocations",
	}
	cmd.AddCommand(c.balanceAdjustCmd())
	cmd.AddCommand(c.balanceShowCmd())
	return cmd
}

func (c *cli) balanceAdjustCmd() *cobra.Command {
	var req leave.AdjustBalanceRequest

	cmd := &cobra.Command{
		Use:   "adjust",
		Short: "Add to, deduct from or set an employee's allocation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := c.servicesFor(cmd.Context())
			if err != nil {
				return err
			}

			req.IsPrivileged = true
			result, err := services.Leave.AdjustAllocation(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&req.EmployeeID, "employee", "", "Employee ID")
	cmd.Flags().StringVar(&req.LeaveType, "type", "", "Leave type: sick, personal, annual, compensatory")
	cmd.Flags().StringVar(&req.Action, "action", "set", "add, deduct or set")
	cmd.Flags().IntVar(&req.Amount, "amount", 0, "Number of days")
	_ = cmd.MarkFlagRequired("employee")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func (c *cli) balanceShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <employee-id>",
		Short: "Print allocated, used and remaining days per leave type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := c.servicesFor(cmd.Context())
			if err != nil {
				return err
			}

			balances, err := services.Leave.ListBalances(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), balances)
		},
	}
}
