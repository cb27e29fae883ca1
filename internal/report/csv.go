package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"pgnest-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// MembersCSV renders the member roster sheet.
func MembersCSV(members []domain.Member) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"ID", "Name", "Phone", "Email", "Room", "Rent Type", "Date of Joining", "Date of Relieving", "Advance", "Active"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range members {
		room := ""
		if members[i].RoomID != nil {
			room = strconv.Itoa(int(*members[i].RoomID))
		}
		relieving := ""
		if members[i].DateOfRelieving != nil {
			relieving = members[i].DateOfRelieving.Format(dateLayout)
		}

		row := []string{
			strconv.Itoa(int(members[i].ID)),
			members[i].Name,
			members[i].Phone,
			members[i].Email,
			room,
			string(members[i].RentType),
			members[i].DateOfJoining.Format(dateLayout),
			relieving,
			members[i].AdvanceAmount.StringFixed(2),
			strconv.FormatBool(members[i].IsActive),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// PaymentsCSV renders the payment sheet for a billing month.
func PaymentsCSV(payments []domain.Payment) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"ID", "Member ID", "Amount", "Month", "Year", "Attempt", "Payment Status", "Approval Status", "Settled", "Due Date", "Paid Date"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range payments {
		paid := ""
		if payments[i].PaidDate != nil {
			paid = payments[i].PaidDate.Format(dateLayout)
		}

		row := []string{
			strconv.Itoa(int(payments[i].ID)),
			strconv.Itoa(int(payments[i].MemberID)),
			payments[i].Amount.StringFixed(2),
			strconv.Itoa(payments[i].Month),
			strconv.Itoa(payments[i].Year),
			strconv.Itoa(int(payments[i].AttemptNumber)),
			string(payments[i].PaymentStatus),
			string(payments[i].ApprovalStatus),
			strconv.FormatBool(payments[i].IsSettled()),
			payments[i].DueDate.Format(dateLayout),
			paid,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// ExpensesCSV renders the expense ledger sheet.
func ExpensesCSV(expenses []domain.Expense) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"ID", "Category", "Description", "Amount", "Paid To", "Paid On", "Payment Method"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range expenses {
		row := []string{
			strconv.Itoa(int(expenses[i].ID)),
			string(expenses[i].Category),
			expenses[i].Description,
			expenses[i].Amount.StringFixed(2),
			expenses[i].PaidTo,
			expenses[i].PaidOn.Format(dateLayout),
			expenses[i].PaymentMethod,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}
