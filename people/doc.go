// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package people imports and queries the people tables.

# Import

Each table is loaded from a file named after it, as CSV or XLSX:

	people.csv           id,name,category,bio,year_of_birth,date_of_birth,wiki_link,more
	people_quotes.csv    person_id,title,context,link,more
	people_creations.csv person_id,title,type,link,more
	people_connections.csv
	                     person1_id,person1_name,person2_id,person2_name,connection,more

The header row decides which columns are written; unknown columns produce a
warning. Invalid rows (a missing name, a non-numeric id) are listed in
ImportResult.Errors and skipped. The rest go in one transaction.

	results, err := people.ImportDir(ctx, conn, "data")

# Queries

List returns people with vote counts for the home page and the cloud;
FindByName resolves a vote or an info lookup.
*/
package people
