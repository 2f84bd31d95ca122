package rules

import "contractguard-backend/models"

// indiaCodeURL is the public source for the Indian Contract Act, 1872
const indiaCodeURL = "https://www.indiacode.nic.in/handle/123456789/2187"

// sections holds citation metadata for the sections of the Indian
// Contract Act, 1872 referenced by the pattern catalog
var sections = map[string]models.StatuteSection{
	"16": {
		Number:   "16",
		Title:    "Undue influence",
		FullText: `A contract is said to be induced by "undue influence" where the relations subsisting between the parties are such that one of the parties is in a position to dominate the will of the other and uses that position to obtain an unfair advantage over the other.`,
		GovURL:   indiaCodeURL,
	},
	"23": {
		Number:   "23",
		Title:    "What considerations and objects are lawful, and what not",
		FullText: `The consideration or object of an agreement is lawful, unless it is forbidden by law; or is of such a nature that, if permitted, it would defeat the provisions of any law; or is fraudulent; or involves or implies injury to the person or property of another; or the Court regards it as immoral, or opposed to public policy. In each of these cases, the consideration or object of an agreement is said to be unlawful. Every agreement of which the object or consideration is unlawful is void.`,
		GovURL:   indiaCodeURL,
	},
	"27": {
		Number:   "27",
		Title:    "Agreement in restraint of trade, void",
		FullText: `Every agreement by which any one is restrained from exercising a lawful profession, trade or business of any kind, is to that extent void. Exception: One who sells the goodwill of a business may agree with the buyer to refrain from carrying on a similar business, within specified local limits, so long as the buyer, or any person deriving title to the goodwill from him, carries on a like business therein, provided that such limits appear to the Court reasonable, regard being had to the nature of the business.`,
		GovURL:   indiaCodeURL,
	},
	"28": {
		Number:   "28",
		Title:    "Agreements in restraint of legal proceedings, void",
		FullText: `Every agreement, by which any party thereto is restricted absolutely from enforcing his rights under or in respect of any contract, by the usual legal proceedings in the ordinary tribunals, or which limits the time within which he may thus enforce his rights, is void to that extent.`,
		GovURL:   indiaCodeURL,
	},
	"29": {
		Number:   "29",
		Title:    "Agreements void for uncertainty",
		FullText: `Agreements, the meaning of which is not certain, or capable of being made certain, are void.`,
		GovURL:   indiaCodeURL,
	},
	"39": {
		Number:   "39",
		Title:    "Effect of refusal of party to perform promise wholly",
		FullText: `When a party to a contract has refused to perform, or disabled himself from performing, his promise in its entirety, the promisee may put an end to the contract, unless he has signified, by words or conduct, his acquiescence in its continuance.`,
		GovURL:   indiaCodeURL,
	},
	"62": {
		Number:   "62",
		Title:    "Effect of novation, rescission, and alteration of contract",
		FullText: `If the parties to a contract agree to substitute a new contract for it, or to rescind or alter it, the original contract need not be performed.`,
		GovURL:   indiaCodeURL,
	},
	"73": {
		Number:   "73",
		Title:    "Compensation for loss or damage caused by breach of contract",
		FullText: `When a contract has been broken, the party who suffers by such breach is entitled to receive, from the party who has broken the contract, compensation for any loss or damage caused to him thereby, which naturally arose in the usual course of things from such breach, or which the parties knew, when they made the contract, to be likely to result from the breach of it. Such compensation is not to be given for any remote and indirect loss or damage sustained by reason of the breach.`,
		GovURL:   indiaCodeURL,
	},
	"74": {
		Number:   "74",
		Title:    "Compensation for breach of contract where penalty stipulated for",
		FullText: `When a contract has been broken, if a sum is named in the contract as the amount to be paid in case of such breach, or if the contract contains any other stipulation by way of penalty, the party complaining of the breach is entitled, whether or not actual damage or loss is proved to have been caused thereby, to receive from the party who has broken the contract reasonable compensation not exceeding the amount so named or, as the case may be, the penalty stipulated for.`,
		GovURL:   indiaCodeURL,
	},
	"124": {
		Number:   "124",
		Title:    "Contract of indemnity defined",
		FullText: `A contract by which one party promises to save the other from loss caused to him by the conduct of the promisor himself, or by the conduct of any other person, is called a "contract of indemnity".`,
		GovURL:   indiaCodeURL,
	},
}

// Section returns the statute metadata for a section number. Unknown
// sections return a bare citation so downstream fields are never empty.
func Section(number string) models.StatuteSection {
	if s, ok := sections[number]; ok {
		return s
	}
	return models.StatuteSection{
		Number: number,
		Title:  "Indian Contract Act, 1872, Section " + number,
		GovURL: indiaCodeURL,
	}
}
