// payment.go
//
// A scholarship-application management portal data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of gss-portal.
// gss-portal is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// gss-portal is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with gss-portal.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment status values.
const (
	PaymentCommitted = "COMMITTED"
	PaymentPaid      = "PAID"
	PaymentCancelled = "CANCELLED"
)

// Payment is a disbursement record against one application.
// COMMITTED payments have been pledged to the institution but not yet
// transferred; only PAID payments count toward the settled total.
type Payment struct {
	PaymentID     uint64          `gorm:"primaryKey;autoIncrement"`
	ApplicationID uint64          `gorm:"not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status        string          `gorm:"size:20;not null;default:'COMMITTED';index"`
	Reference     string          `gorm:"size:100"`
	PaymentDate   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Application *Application `gorm:"foreignKey:ApplicationID"`
}

// TableName overrides the table name for Payment
func (Payment) TableName() string {
	return "payments"
}
