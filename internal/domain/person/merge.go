package person

// MergeCompany folds registry data into the record being edited. The result is
// always a company that keeps current's identity, status and timestamps;
// fetched values replace current ones only where the registry has them.
// Partners are always replaced, an empty list included. Only the first phone
// is kept.
func MergeCompany(current Person, fetched *Company) *Company {
	var out *Company
	if current == nil {
		out = Clone(fetched).(*Company)
	} else {
		out = ChangeType(Clone(current), TypeCompany).(*Company)
	}

	if fetched.Name != "" {
		out.Name = fetched.Name
	}
	if fetched.Document != "" {
		out.Document = fetched.Document
	}
	out.Email = pick(fetched.Email, out.Email)
	if len(fetched.Phones) > 0 {
		out.Phones = []Phone{fetched.Phones[0]}
	}
	if fetched.Address != nil {
		addr := *fetched.Address
		addr.Complement = cloneString(fetched.Address.Complement)
		out.Address = &addr
	}

	out.TradeName = pick(fetched.TradeName, out.TradeName)
	out.LegalNature = pick(fetched.LegalNature, out.LegalNature)
	out.MainCnae = pick(fetched.MainCnae, out.MainCnae)
	out.CompanySize = pick(fetched.CompanySize, out.CompanySize)
	out.CapitalSocial = pick(fetched.CapitalSocial, out.CapitalSocial)
	out.OpeningDate = pick(fetched.OpeningDate, out.OpeningDate)
	out.FoundationDate = pick(fetched.FoundationDate, out.FoundationDate)
	out.CadastralStatus = pick(fetched.CadastralStatus, out.CadastralStatus)
	out.CadastralStatusDate = pick(fetched.CadastralStatusDate, out.CadastralStatusDate)
	// the registry's cadastral situation is the registration status
	out.RegistrationStatus = pick(fetched.RegistrationStatus, pick(fetched.CadastralStatus, out.RegistrationStatus))
	out.RegistrationStatusDate = pick(fetched.RegistrationStatusDate, pick(fetched.CadastralStatusDate, out.RegistrationStatusDate))
	if fetched.SimplesOption != nil {
		out.SimplesOption = cloneBool(fetched.SimplesOption)
	}
	if fetched.MeiOption != nil {
		out.MeiOption = cloneBool(fetched.MeiOption)
	}
	if fetched.SecondaryCnaes != nil {
		out.SecondaryCnaes = append([]string{}, fetched.SecondaryCnaes...)
	}

	out.Partners = make([]Partner, 0, len(fetched.Partners))
	for _, p := range fetched.Partners {
		p.EntryDate = cloneString(p.EntryDate)
		p.AgeRange = cloneString(p.AgeRange)
		out.Partners = append(out.Partners, p)
	}
	return out
}

func pick(preferred, fallback *string) *string {
	if preferred != nil {
		return cloneString(preferred)
	}
	return fallback
}
