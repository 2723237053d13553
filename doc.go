// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package pathfinder-sheets is a table-side aid for Pathfinder players that keeps their character sheet in Google Sheets.

pathfinder-sheets reads the ability scores, defences, saving throws, combat stats and skills from the character sheet
and rolls the checks, attacks and damage a player needs during a session. Access to the spreadsheet is authorised once
and the refresh token is kept in a local credential store so that later runs need no browser.

pathfinder-sheets supports the following commands:

  - authorise, to authorise application access to the Google Sheets character sheet
  - sheet, to display the character sheet
  - export, to download the character sheet as a TSV file
  - check, to roll a d20 skill check, ability check or saving throw
  - attack, to roll a d20 attack
  - damage, to roll normal or sneak attack damage
  - average, to calculate the average damage over a number of rolls
  - roll, to roll dice in dice notation
  - console, an interactive console for all of the above
*/
package sheets
