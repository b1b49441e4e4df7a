package sqlinline

const QSchema = `--sql 4c1f1f8e-0be0-4a0a-9a5d-2f6d9f1c7b21
create table if not exists campaigns (
    id             text primary key,
    creator        text not null,
    title          text not null,
    description    text not null default '',
    metadata_uri   text not null default '',
    goal_amount    bigint not null check (goal_amount > 0),
    donated_amount bigint not null default 0 check (donated_amount >= 0),
    deadline       timestamptz not null,
    created_at     timestamptz not null default now(),
    is_active      boolean not null default true
);

create table if not exists donations (
    id          text primary key,
    campaign_id text not null references campaigns (id) on delete restrict,
    donor       text not null,
    amount      bigint not null check (amount > 0),
    created_at  timestamptz not null
);

create index if not exists donations_campaign_idx on donations (campaign_id);
create index if not exists donations_campaign_donor_idx on donations (campaign_id, donor);

create table if not exists balances (
    account text primary key,
    balance bigint not null default 0 check (balance >= 0)
);
`
