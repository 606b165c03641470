package extract

import "strings"

// DefaultInstructions are used when a request carries none
const DefaultInstructions = "Extract all invoice fields including invoice number, date, due date, " +
	"vendor name and address, purchase order, account number, line items, total amount, and currency."

const systemPrompt = `You are an expert invoice parser.
Given the text of an invoice, extract ALL key details and return them as JSON.

CRITICAL RULES:
1. Return values EXACTLY as they appear in the PDF text, do not reformat anything
2. For dates, copy the EXACT format shown (e.g. "January 25, 2016" NOT "2016-01-25")
3. For addresses, only include address lines, NOT other fields mixed in
4. For amounts, include the currency symbol if present (e.g. "$93.50" not "93.50")
5. Do NOT include field labels in the values ("Invoice Number: INV-123" returns "INV-123")
6. If you cannot find a value for a field, return null (not an empty string)

REQUIRED FIELDS:

1. invoice_number: The unique invoice or bill identifier (e.g. "INV-123", "F2019-0006224").
   Look for: Invoice Number, Invoice #, Bill Number, Reference Number, Document Number.
2. invoice_date: The date the invoice was issued, exactly as shown.
   Look for: Invoice Date, Issue Date, Date, Billing Date. NOT a service period or due date.
3. due_date: The payment due date, exactly as shown.
   Look for: Due Date, Payment Due, Pay By Date, Payment Deadline.
4. vendor_name: The company or person issuing the invoice. Name ONLY, no order numbers.
   Look for: From, Vendor, Supplier, Billed By, Company Name at the top.
5. vendor_address: The FULL address of the vendor (address lines ONLY).
   Include street, city and postal code. No dates or invoice numbers.
6. purchase_order: Purchase order number if mentioned (e.g. "PO-12345").
   Look for: PO, Purchase Order, PO Number, Order Number. Return ONLY the number.
7. account_number: Customer or bank account if mentioned (e.g. "ACC # 1234 1234 BSB # 4321 432").
   Return the COMPLETE account info including the "ACC" and "BSB" labels.
8. line_items: Items or services as an array of objects with description, quantity, unit_price, amount.
9. total_amount: The final TOTAL to be paid, with the currency symbol if shown (e.g. "$1500.00").
   Look for: Total, Grand Total, Amount Due, Final Amount, Balance Due.
10. currency: The currency symbol (e.g. "$", "€", "£") or code if explicitly written.`

// buildSystemPrompt appends the request instructions to the fixed rules
func buildSystemPrompt(instructions string) string {
	instructions = strings.TrimSpace(instructions)
	if instructions == "" {
		instructions = DefaultInstructions
	}
	return systemPrompt + "\n\nAdditional instructions: " + instructions
}

// truncateText cuts text to at most limit runes. A limit of zero or less
// disables truncation.
func truncateText(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
