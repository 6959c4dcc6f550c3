package db

import "database/sql"

// EnsureSchema creates the tables this service owns. The UNIQUE key on
// payments.booking_id is the authority for the one-payment-per-booking
// invariant; application code only surfaces the violation.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(20) NULL,
			full_name VARCHAR(255) NOT NULL,
			hashed_password VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'passenger',
			is_active TINYINT(1) NOT NULL DEFAULT 1,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_users_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS routes (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			route_number VARCHAR(50) NOT NULL,
			route_name VARCHAR(255) NOT NULL,
			start_location VARCHAR(255) NOT NULL,
			end_location VARCHAR(255) NOT NULL,
			distance_km DOUBLE NULL,
			fare DOUBLE NOT NULL,
			is_active TINYINT(1) NOT NULL DEFAULT 1,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_routes_number (route_number)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			route_id BIGINT NOT NULL,
			booking_reference VARCHAR(50) NOT NULL,
			passenger_name VARCHAR(255) NOT NULL,
			passenger_category VARCHAR(50) NOT NULL DEFAULT 'general',
			seat_number VARCHAR(10) NULL,
			journey_date DATETIME NOT NULL,
			fare_amount DOUBLE NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_booking_reference (booking_reference),
			KEY idx_bookings_user (user_id),
			KEY idx_bookings_route (route_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS payments (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			booking_id BIGINT NOT NULL,
			payment_method VARCHAR(50) NOT NULL,
			transaction_id VARCHAR(100) NOT NULL,
			amount DOUBLE NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			payment_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_payments_booking (booking_id),
			UNIQUE KEY uniq_payments_txn (transaction_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS live_bus_locations (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			bus_id BIGINT NOT NULL,
			latitude DOUBLE NOT NULL,
			longitude DOUBLE NOT NULL,
			speed DOUBLE NOT NULL DEFAULT 0,
			heading DOUBLE NULL,
			last_updated TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_live_bus (bus_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}

	for _, ddl := range stmts {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}
