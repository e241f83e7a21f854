package services

import (
	"fmt"

	"github.com/fitgear/fitgear-api/models"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

// GenerateOrderReceiptPDF renders the customer receipt for order.
func GenerateOrderReceiptPDF(order *models.Order) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	dark := color.Color{Red: 17, Green: 17, Blue: 17}
	muted := color.Color{Red: 110, Green: 110, Blue: 104}

	m.Row(15, func() {
		m.Col(12, func() {
			m.Text("RECEIPT", props.Text{Size: 24, Style: consts.Bold, Color: dark})
		})
	})
	m.Row(10, func() {
		m.Col(12, func() {
			m.Text("FITGEAR", props.Text{Size: 16, Style: consts.Bold, Color: dark})
		})
	})
	m.Row(5, func() {
		m.Col(12, func() {
			m.Text("support@fitgear.shop", props.Text{Size: 9, Color: muted})
		})
	})

	m.Row(8, func() {})

	m.Row(5, func() {
		m.Col(6, func() {
			m.Text(order.Email, props.Text{Size: 10, Style: consts.Bold, Color: dark})
		})
		m.Col(6, func() {
			m.Text(fmt.Sprintf("Order #%s", order.OrderNumber), props.Text{Size: 10, Color: dark, Align: consts.Right})
		})
	})
	m.Row(5, func() {
		m.Col(6, func() {
			m.Text(fmt.Sprintf("Paid with %s", order.PaymentMethod), props.Text{Size: 9, Color: muted})
		})
		m.Col(6, func() {
			m.Text(fmt.Sprintf("Date: %s", order.CreatedAt.Format("Jan 02, 2006")), props.Text{Size: 9, Color: muted, Align: consts.Right})
		})
	})
	if order.PaymentReference != "" {
		m.Row(5, func() {
			m.Col(12, func() {
				m.Text(fmt.Sprintf("Reference: %s", order.PaymentReference), props.Text{Size: 9, Color: muted})
			})
		})
	}

	m.Row(8, func() {})

	header := props.Text{Size: 8, Style: consts.Bold, Color: dark}
	headerRight := header
	headerRight.Align = consts.Right
	m.Row(6, func() {
		m.Col(6, func() { m.Text("Item", header) })
		m.Col(2, func() { m.Text("Qty", headerRight) })
		m.Col(2, func() { m.Text("Price", headerRight) })
		m.Col(2, func() { m.Text("Total", headerRight) })
	})

	cell := props.Text{Size: 9, Color: dark}
	cellRight := cell
	cellRight.Align = consts.Right
	for _, item := range order.Items {
		m.Row(6, func() {
			m.Col(6, func() { m.Text(item.ProductName, cell) })
			m.Col(2, func() { m.Text(fmt.Sprintf("%d", item.Quantity), cellRight) })
			m.Col(2, func() { m.Text(FormatKES(item.Price), cellRight) })
			m.Col(2, func() { m.Text(FormatKES(item.Subtotal), cellRight) })
		})
	}

	m.Row(8, func() {})

	m.Row(7, func() {
		m.Col(8, func() {})
		m.Col(2, func() {
			m.Text("Total", props.Text{Size: 10, Style: consts.Bold, Color: dark, Align: consts.Right})
		})
		m.Col(2, func() {
			m.Text(FormatKES(order.TotalAmount), props.Text{Size: 10, Style: consts.Bold, Color: dark, Align: consts.Right})
		})
	})

	m.Row(12, func() {})
	m.Row(5, func() {
		m.Col(12, func() {
			m.Text("Thank you for training with FitGear!", props.Text{Size: 9, Style: consts.Bold, Color: dark})
		})
	})

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
