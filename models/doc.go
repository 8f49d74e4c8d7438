// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - CreateContestRequest: name, ticker, startDate, endDate, password
  - ContestUpdate: optional pointer fields for PATCH
  - SubmitPickRequest: price, contestId, password
  - RegisterRequest, LoginRequest: account credentials

# Response Types

  - TokenResponse: token
  - MessageResponse: msg
  - ValidationResponse: errors (param, msg)

# Domain Types

  - User, UserRef: account and its populated view
  - Contest: contest metadata, populated admin and picks
  - Pick, PickSummary: one user's price for one contest
  - Standing: ranked pick of a settled contest

Prices are shopspring decimals and marshal as JSON strings.
Password digests carry the json:"-" tag and are never serialized.
*/
package models
