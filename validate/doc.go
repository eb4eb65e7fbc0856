// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validate implements per-field validation and normalization for
form sections.

# Rules

Each section declares a Rules table mapping field name to a Rule:
required-ness, a format class, and optionally a MatchField for
cross-field equality (confirm-account-number style checks).

# Normalization

Normalization is applied on every validation pass and is a fixed point:
validating an already-normalized value returns it unchanged. The policy
is a product rule shared by every form:

  - all text: strip leading whitespace, collapse repeated whitespace
  - names: letters and spaces only, first letter capitalized
  - phone numbers: digits only, one leading zero dropped
  - national IDs: digits plus V only, trailing v uppercased
  - decimals: digits and one dot only; a lone "0" is below minimum
  - integers: digits only

# Error Map And Forward Gate

Section returns the normalized form plus a field→message error map.
Untouched fields never carry errors. Complete is the forward-navigation
gate: the error map must be empty AND every required field must hold a
non-empty value. The two conditions are deliberately independent - a
required field the user has not reached yet has no error but still keeps
the gate closed.
*/
package validate
